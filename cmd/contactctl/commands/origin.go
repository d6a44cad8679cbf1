package commands

import (
	"errors"
	"fmt"

	"github.com/benvon/contact-relay/internal/config"
	"github.com/benvon/contact-relay/internal/middleware"
	"github.com/spf13/cobra"
)

// ErrOriginDenied is returned by check-origin for an origin the relay would reject
var ErrOriginDenied = errors.New("origin denied")

// NewCheckOriginCmd creates the check-origin command
func NewCheckOriginCmd() *cobra.Command {
	var origins string

	cmd := &cobra.Command{
		Use:   "check-origin <origin>",
		Short: "Check an origin against the allow-list",
		Long:  "Report whether a browser sending the given Origin header would be let through. Uses CORS_ORIGIN unless --origins is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var allowList []string
			if origins != "" {
				allowList = config.AllowedOriginsSlice(origins)
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				allowList = cfg.AllowedOrigins()
			}

			policy := middleware.NewOriginPolicy(allowList)
			out := cmd.OutOrStdout()
			if policy.Allowed(args[0]) {
				fmt.Fprintf(out, "allowed: %q\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "denied: %q (allow-list: %v)\n", args[0], policy.Origins())
			return ErrOriginDenied
		},
	}

	cmd.Flags().StringVar(&origins, "origins", "", "Comma-separated allow-list to check against instead of CORS_ORIGIN")

	return cmd
}

package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benvon/contact-relay/internal/logger"
	"github.com/benvon/contact-relay/internal/models"
	"github.com/benvon/contact-relay/internal/services/mailer"
	"github.com/benvon/contact-relay/internal/validation"
	"github.com/spf13/cobra"
)

// NewSendTestCmd creates the send-test command
func NewSendTestCmd() *cobra.Command {
	var name, email, phone, subject, message, provider string
	var debug bool

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Send a sample submission through the configured provider",
		Long:  "Validate and dispatch a sample contact submission exactly as the server would, bypassing origin and rate checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if provider != "" {
				cfg.MailProvider = provider
			}

			zapLogger, err := logger.NewProductionLogger(debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync(zapLogger)
			}()

			submission, err := validation.ValidateSubmission(map[string]any{
				models.FieldName:    name,
				models.FieldEmail:   email,
				models.FieldPhone:   phone,
				models.FieldSubject: subject,
				models.FieldMessage: message,
			})
			if err != nil {
				return fmt.Errorf("invalid submission: %w", err)
			}

			dispatcher, err := mailer.NewFromConfig(cfg, zapLogger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.MailTimeout+5*time.Second)
			defer cancel()

			id, err := dispatcher.Dispatch(ctx, submission)
			if err != nil {
				return fmt.Errorf("send failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent via %s to %s, id %s\n", cfg.MailProvider, cfg.EmailTo, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Prueba", "Sender name")
	cmd.Flags().StringVar(&email, "email", "prueba@example.com", "Sender email")
	cmd.Flags().StringVar(&phone, "phone", "000-000-0000", "Sender phone")
	cmd.Flags().StringVar(&subject, "subject", "Mensaje de prueba", "Subject")
	cmd.Flags().StringVar(&message, "message", "Mensaje de prueba enviado con contactctl.", "Message body")
	cmd.Flags().StringVar(&provider, "provider", "", "Override MAIL_PROVIDER ("+strings.Join(mailer.NewRegistry().Names(), ", ")+")")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

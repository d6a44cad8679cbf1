package main

import (
	"fmt"
	"os"

	"github.com/benvon/contact-relay/cmd/contactctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "contactctl",
		Short: "Operator tool for the contact relay",
		Long:  "Inspect the effective configuration, check origins against the allow-list and send a test message",
	}

	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewCheckOriginCmd())
	rootCmd.AddCommand(commands.NewSendTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

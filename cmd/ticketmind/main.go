package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ticketmind/ticketmind/cmd/ticketmind/commands"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticketmind",
		Short: "Ticket classification and sentiment analysis CLI",
		Long: `ticketmind classifies support tickets and scores conversation sentiment.

Common workflows:
  ticketmind classify --title "..." --description "..."   # Classify one ticket
  ticketmind sentiment "I love this product"              # Score one text
  ticketmind conversation --file messages.txt             # Summarize a conversation
  ticketmind train --file labeled_tickets.csv             # Train the statistical model

For detailed help on any command, use:
  ticketmind <command> --help`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "config/config.yaml", "Path to configuration file")

	// Add subcommands
	rootCmd.AddCommand(commands.NewClassifyCmd())
	rootCmd.AddCommand(commands.NewSentimentCmd())
	rootCmd.AddCommand(commands.NewConversationCmd())
	rootCmd.AddCommand(commands.NewTrainCmd())

	// Execute
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewClassifyCmd creates the classify command
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a support ticket",
		Long: `Classify a ticket into category and priority and derive routing hints.

Metadata is a JSON object; recognized keys are customer_tier,
previous_escalations, and sla_hours.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			metadataJSON, _ := cmd.Flags().GetString("metadata")

			metadata := map[string]interface{}{}
			if metadataJSON != "" {
				if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
					return fmt.Errorf("invalid --metadata JSON: %w", err)
				}
			}

			eng, err := buildEngine(cmd)
			if err != nil {
				return err
			}

			result := eng.ClassifyTicket(cmd.Context(), title, description, metadata)
			return printJSON(result)
		},
	}

	cmd.Flags().StringP("title", "t", "", "Ticket title")
	cmd.Flags().StringP("description", "d", "", "Ticket description")
	cmd.Flags().StringP("metadata", "m", "", "Ticket metadata as a JSON object")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ticketmind/ticketmind/pkg/sentiment"
)

// NewConversationCmd creates the conversation command
func NewConversationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Summarize sentiment over a conversation",
		Long: `Read a conversation (one message per line) and print its sentiment
summary together with the escalation verdict. Use --file - to read from
stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			var reader io.Reader
			if path == "-" {
				reader = os.Stdin
			} else {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				reader = f
			}

			var messages []sentiment.Message
			var texts []string
			scanner := bufio.NewScanner(reader)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				messages = append(messages, sentiment.Message{Content: line})
				texts = append(texts, line)
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			if len(messages) == 0 {
				return fmt.Errorf("no messages to analyze")
			}

			eng, err := buildEngine(cmd)
			if err != nil {
				return err
			}

			summary := eng.AnalyzeConversation(cmd.Context(), messages)
			escalate, reason := eng.ShouldEscalate(summary, len(messages), texts)

			return printJSON(struct {
				Summary  sentiment.ConversationSummary `json:"summary"`
				Escalate bool                          `json:"escalate"`
				Reason   string                        `json:"reason,omitempty"`
			}{summary, escalate, reason})
		},
	}

	cmd.Flags().StringP("file", "f", "-", "Conversation file, one message per line (- for stdin)")

	return cmd
}

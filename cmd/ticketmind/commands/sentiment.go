package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ticketmind/ticketmind/pkg/sentiment"
)

// NewSentimentCmd creates the sentiment command
func NewSentimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment [text]",
		Short: "Score the sentiment of a text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, _ := cmd.Flags().GetString("method")

			switch sentiment.Method(method) {
			case sentiment.MethodEnsemble, sentiment.MethodTransformer,
				sentiment.MethodVader, sentiment.MethodPolarity:
			default:
				return fmt.Errorf("unknown method %q (want ensemble, transformer, vader, or polarity)", method)
			}

			eng, err := buildEngine(cmd)
			if err != nil {
				return err
			}

			result := eng.AnalyzeSentiment(cmd.Context(), args[0], sentiment.Method(method))
			return printJSON(result)
		},
	}

	cmd.Flags().StringP("method", "M", "ensemble", "Analysis method: ensemble, transformer, vader, polarity")

	return cmd
}

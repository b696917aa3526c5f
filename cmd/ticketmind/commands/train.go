package commands

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ticketmind/ticketmind/pkg/classification"
)

// NewTrainCmd creates the train command
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the statistical classifier from labeled tickets",
		Long: `Fit the TF-IDF vectorizer and forest classifier on a CSV of labeled
tickets (columns: text, category) and persist the artifacts to the
configured models directory. Fewer examples than the configured minimum
leaves the current model untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := csv.NewReader(f).ReadAll()
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			var examples []classification.TrainingExample
			for _, record := range records {
				if len(record) < 2 {
					continue
				}
				examples = append(examples, classification.TrainingExample{
					Text:     record[0],
					Category: record[1],
				})
			}

			eng, err := buildEngine(cmd)
			if err != nil {
				return err
			}

			if err := eng.Train(examples); err != nil {
				return err
			}
			fmt.Printf("Training finished over %d examples\n", len(examples))
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "CSV file of labeled tickets (text,category)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

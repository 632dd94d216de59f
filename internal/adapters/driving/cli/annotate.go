package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [index] [candidate-id]",
	Short: "Record the decision for a mention",
	Long: `Stores candidate-id as the decision for the mention at index. The id must
be one of the mention's candidates, or "?" when none of them is correct.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	candidateID := args[1]
	if candidateID == "" {
		return domain.ErrNoDecision
	}
	s, err := backend()
	if err != nil {
		return err
	}

	nav := services.NewTermNavigator(s.Resolver, s.Submitter, "", index)
	defer nav.Close()
	if err := nav.Load(cmd.Context()); err != nil {
		return err
	}
	if _, err := nav.Decide(cmd.Context(), candidateID); err != nil {
		return fmt.Errorf("item %d: %w", index, err)
	}
	cmd.Printf("Item %d annotated as %s\n", index, candidateID)
	return nil
}

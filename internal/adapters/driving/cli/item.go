package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

var itemJSON bool

var itemCmd = &cobra.Command{
	Use:   "item [index]",
	Short: "Show a mention and its candidates",
	Long: `Shows the mention stored at index with its candidate list, duplicates
removed and "?" (not in list) appended, exactly as offered for annotation.`,
	Args: cobra.ExactArgs(1),
	RunE: runItem,
}

func init() {
	itemCmd.Flags().BoolVar(&itemJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(itemCmd)
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("index must be a non-negative integer, got %q: %w", arg, domain.ErrInvalidInput)
	}
	return index, nil
}

func runItem(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	s, err := backend()
	if err != nil {
		return err
	}

	m, err := s.Resolver.Resolve(cmd.Context(), index)
	if err != nil {
		return err
	}

	if itemJSON {
		return writeJSON(cmd, struct {
			Index int `json:"index"`
			*domain.Mention
		}{index, m})
	}

	cmd.Printf("Item %d: %s\n", index, m.Input)
	cmd.Printf("  Source: %s\n", m.ContextID)
	if m.ControlAccess {
		cmd.Println("  Control access: yes")
	}
	if m.Annotated() {
		cmd.Printf("  Annotated as: %s\n", m.Golden)
	}
	cmd.Println()

	rows := make([][]string, 0, len(m.Candidates))
	for _, c := range m.Candidates {
		mark := ""
		if c.ID == m.Golden {
			mark = "*"
		}
		rows = append(rows, []string{mark, c.ID, c.Names.String(), c.Distance.String()})
	}
	printTable(cmd,
		[]string{"", "Candidate", "Names", "Distance"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
	return nil
}

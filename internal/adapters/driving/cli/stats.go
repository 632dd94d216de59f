package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show annotation progress",
	Long:  `Shows how many mentions in the backend are annotated and how many are left.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	s, err := backend()
	if err != nil {
		return err
	}

	summary, err := s.Statistics.Summary(cmd.Context())
	if err != nil {
		return err
	}

	if statsJSON {
		return writeJSON(cmd, summary)
	}

	printTable(cmd,
		[]string{"Done", "Todo", "Total", "Progress"},
		[][]string{{
			strconv.Itoa(summary.Done),
			strconv.Itoa(summary.Todo),
			strconv.Itoa(summary.Total()),
			fmt.Sprintf("%.1f%%", summary.Percent()),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	)
	return nil
}

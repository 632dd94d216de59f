package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

var (
	termsFrom int
	termsSize int
	termsJSON bool
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List terms by frequency",
	Long: `Lists the canonical names that mentions resolve to, most frequent first.
Use --from and --size to page through the listing.`,
	Args: cobra.NoArgs,
	RunE: runTerms,
}

var termsShowCmd = &cobra.Command{
	Use:   "show [term]",
	Short: "List the occurrences of a term",
	Long: `Lists the mentions associated with a term, control-access mentions first.
The index column can be passed to "annotator item" and "annotator annotate".`,
	Args: cobra.ExactArgs(1),
	RunE: runTermsShow,
}

func init() {
	for _, c := range []*cobra.Command{termsCmd, termsShowCmd} {
		c.Flags().IntVar(&termsFrom, "from", 0, "zero-based offset of the first row")
		c.Flags().IntVar(&termsSize, "size", 0, "number of rows (default ui.page_size)")
		c.Flags().BoolVar(&termsJSON, "json", false, "output as JSON")
	}
	termsCmd.AddCommand(termsShowCmd)
	rootCmd.AddCommand(termsCmd)
}

func pageSize(s *Services) int {
	if termsSize > 0 {
		return termsSize
	}
	if s.PageSize > 0 {
		return s.PageSize
	}
	return domain.DefaultPageSize
}

func runTerms(cmd *cobra.Command, _ []string) error {
	s, err := backend()
	if err != nil {
		return err
	}

	page, err := s.Terms.Terms(cmd.Context(), termsFrom, pageSize(s))
	if err != nil {
		return err
	}

	if termsJSON {
		return writeJSON(cmd, pageJSON(page))
	}

	if len(page.Items) == 0 {
		cmd.Println("No terms found.")
		return nil
	}
	rows := make([][]string, 0, len(page.Items))
	for _, t := range page.Items {
		rows = append(rows, []string{t.Key, strconv.Itoa(t.Freq)})
	}
	printTable(cmd, []string{"Term", "Frequency"}, rows, []columnAlignment{alignLeft, alignRight})
	cmd.Println(pageFooter(page.Offset, len(page.Items), page.Total))
	return nil
}

func runTermsShow(cmd *cobra.Command, args []string) error {
	s, err := backend()
	if err != nil {
		return err
	}

	term := args[0]
	page, err := s.Terms.Occurrences(cmd.Context(), term, termsFrom, pageSize(s))
	if err != nil {
		return err
	}

	if termsJSON {
		return writeJSON(cmd, pageJSON(page))
	}

	if len(page.Items) == 0 {
		cmd.Printf("No occurrences of %q.\n", term)
		return nil
	}
	rows := make([][]string, 0, len(page.Items))
	for _, o := range page.Items {
		rows = append(rows, []string{
			strconv.Itoa(o.Index),
			o.Source,
			yesNo(o.ControlAccess),
			yesNo(o.Annotated),
		})
	}
	printTable(cmd,
		[]string{"Index", "Source", "Control access", "Annotated"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
	cmd.Println(pageFooter(page.Offset, len(page.Items), page.Total))
	return nil
}

type listing[T any] struct {
	From  int `json:"from"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Items []T `json:"items"`
}

func pageJSON[T any](p domain.Page[T]) listing[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return listing[T]{From: p.Offset, Size: p.Size, Total: p.Total, Items: items}
}

func pageFooter(offset, n, total int) string {
	if n == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	return fmt.Sprintf("%d-%d of %d", offset+1, offset+n, total)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

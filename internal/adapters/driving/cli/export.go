package cli

import (
	"github.com/spf13/cobra"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export all annotations",
	Long: `Downloads the backend's export of every item with its decision.
Writes to stdout unless --output is given; a path ending in .gz is compressed.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Ask the backend to persist its annotations",
	Long: `Triggers the backend's save-to-disk endpoint. Only available when
backend.persist is enabled in the configuration.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(saveCmd)
}

func runDump(cmd *cobra.Command, _ []string) error {
	s, err := backend()
	if err != nil {
		return err
	}

	if dumpOutput == "" {
		_, err := s.Export.Dump(cmd.Context(), cmd.OutOrStdout())
		return err
	}

	n, err := s.Export.DumpToFile(cmd.Context(), dumpOutput)
	if err != nil {
		return err
	}
	cmd.Printf("Wrote %d bytes to %s\n", n, dumpOutput)
	return nil
}

func runSave(cmd *cobra.Command, _ []string) error {
	s, err := backend()
	if err != nil {
		return err
	}

	if err := s.Export.Save(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Backend saved its annotations.")
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `View and change the annotator configuration.

Keys:
  backend.url                  API base URL
  backend.timeout_seconds      per-request timeout
  backend.requests_per_second  client-side throttle, 0 disables it
  backend.persist              offer the backend's save-to-disk trigger
  ui.page_size                 rows per listing page
  ui.log_file                  verbose log target while the TUI runs`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsService() (*Services, error) {
	if deps == nil || deps.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return deps, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Printf("Configuration (%s)\n", s.Settings.Path())
	cmd.Println()
	cmd.Println("[backend]")
	cmd.Printf("  url: %s\n", settings.Backend.URL)
	cmd.Printf("  timeout_seconds: %d\n", int(settings.Backend.Timeout.Seconds()))
	cmd.Printf("  requests_per_second: %s\n", strconv.FormatFloat(settings.Backend.RequestsPerSecond, 'f', -1, 64))
	cmd.Printf("  persist: %t\n", settings.Backend.Persist)
	cmd.Println()
	cmd.Println("[ui]")
	cmd.Printf("  page_size: %d\n", settings.UI.PageSize)
	logFile := settings.UI.LogFile
	if logFile == "" {
		logFile = "(default)"
	}
	cmd.Printf("  log_file: %s\n", logFile)

	if baseURL != "" && baseURL != settings.Backend.URL {
		cmd.Println()
		cmd.Printf("--base-url overrides backend.url: %s\n", baseURL)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := s.Settings.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

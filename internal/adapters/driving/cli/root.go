// Package cli provides the Cobra command tree of the annotator.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// Options carries the persistent flags to the service factory.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// BaseURL overrides backend.url for this invocation.
	BaseURL string
}

// Services holds the driving ports the commands use.
type Services struct {
	Settings   driving.SettingsService
	Resolver   driving.CandidateResolver
	Submitter  driving.AnnotationSubmitter
	Terms      driving.TermService
	Statistics driving.StatisticsService
	Export     driving.ExportService

	// BackendURL is the base URL the backend ports talk to.
	BackendURL string

	// PageSize is the default listing page size.
	PageSize int

	// LogFile receives verbose logs during TUI runs.
	LogFile string

	// BackendErr is set when the settings do not describe a usable
	// backend. The backend ports are nil then; config commands still work.
	BackendErr error
}

// Factory builds the services once flags are parsed.
type Factory func(opts Options) (*Services, error)

var (
	version = "dev"

	configDir string
	baseURL   string
	verbose   bool

	factory Factory
	deps    *Services
)

// skipServices marks commands that run without configuration.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "annotator",
	Short: "Review entity-linking candidates",
	Long: `Annotator is a terminal client for an entity-linking annotation backend.

Each mention in the backend comes with a ranked list of candidate entities.
Pick the correct one, or "?" when none applies, and the decision is stored
in the backend. Run without a subcommand to start the interactive UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.annotator)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend API base URL, overrides backend.url")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs prebuilt services, bypassing the factory.
func SetServices(s *Services) {
	deps = s
}

// Execute runs the root command, building services with f.
func Execute(f Factory) error {
	factory = f
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if deps != nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}
	if factory == nil {
		return errors.New("services not configured")
	}

	s, err := factory(Options{ConfigDir: configDir, BaseURL: baseURL})
	if err != nil {
		return err
	}
	deps = s
	return nil
}

// backend returns the services, failing when the backend ports are unusable.
func backend() (*Services, error) {
	if deps == nil {
		return nil, errors.New("services not configured")
	}
	if deps.BackendErr != nil {
		return nil, fmt.Errorf("backend not available: %w", deps.BackendErr)
	}
	return deps, nil
}

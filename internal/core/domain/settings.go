package domain

import "time"

// Configuration keys, in the flattened dot notation of the config file.
const (
	KeyBackendURL     = "backend.url"
	KeyBackendTimeout = "backend.timeout_seconds"
	KeyBackendRate    = "backend.requests_per_second"
	KeyBackendPersist = "backend.persist"
	KeyUIPageSize     = "ui.page_size"
	KeyUILogFile      = "ui.log_file"
)

// Default backend settings.
const (
	DefaultBackendURL        = "http://localhost:8080/api"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 10.0
)

// BackendSettings configures the remote annotation store.
type BackendSettings struct {
	// URL is the API base URL, without a trailing slash.
	URL string

	// Timeout bounds every request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests; 0 disables throttling.
	RequestsPerSecond float64

	// Persist enables the explicit save-to-disk trigger for stores that
	// do not persist on their own.
	Persist bool
}

// UISettings configures presentation.
type UISettings struct {
	// PageSize is the number of rows per listing page.
	PageSize int

	// LogFile receives verbose logs while the TUI owns the terminal.
	LogFile string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Backend BackendSettings
	UI      UISettings
}

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			URL:               DefaultBackendURL,
			Timeout:           DefaultTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		UI: UISettings{
			PageSize: DefaultPageSize,
		},
	}
}

// Validate checks that the settings are usable.
func (s AppSettings) Validate() error {
	if s.Backend.URL == "" {
		return ErrInvalidInput
	}
	if s.Backend.Timeout <= 0 || s.Backend.RequestsPerSecond < 0 {
		return ErrInvalidInput
	}
	if s.UI.PageSize <= 0 {
		return ErrInvalidInput
	}
	return nil
}

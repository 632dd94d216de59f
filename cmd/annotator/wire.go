package main

import (
	"fmt"
	"strings"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driven/backend/rest"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driven/config/file"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/cli"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
)

// buildServices reads the configuration and assembles the core services.
// Settings that do not describe a usable backend leave the backend ports
// unset so the config commands can still repair them.
func buildServices(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(store)
	out := &cli.Services{Settings: settingsService}

	settings, err := settingsService.Get()
	if err != nil {
		out.BackendErr = err
		return out, nil
	}
	if opts.BaseURL != "" {
		settings.Backend.URL = strings.TrimRight(opts.BaseURL, "/")
	}

	client, err := rest.NewClient(rest.ConfigFromSettings(settings.Backend))
	if err != nil {
		out.BackendErr = err
		return out, nil
	}

	out.Resolver = services.NewCandidateResolver(client)
	out.Submitter = services.NewAnnotationSubmitter(client)
	out.Terms = services.NewTermService(client)
	out.Statistics = services.NewStatisticsService(client)
	out.Export = services.NewExportService(client, settings.Backend.Persist)
	out.BackendURL = client.BaseURL()
	out.PageSize = settings.UI.PageSize
	out.LogFile = settings.UI.LogFile
	return out, nil
}

package tui

import "errors"

// ErrMissingResolver is returned when the candidate resolver is not provided.
var ErrMissingResolver = errors.New("tui: candidate resolver is required")

// ErrMissingSubmitter is returned when the annotation submitter is not provided.
var ErrMissingSubmitter = errors.New("tui: annotation submitter is required")

// ErrMissingTermService is returned when the term service is not provided.
var ErrMissingTermService = errors.New("tui: term service is required")

// ErrMissingStatistics is returned when the statistics service is not provided.
var ErrMissingStatistics = errors.New("tui: statistics service is required")

// ErrInvalidPorts is returned when no ports are given at all.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

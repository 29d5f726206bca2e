package service

import "errors"

var (
	// ErrInvalidModel is returned when a codegen request names an unknown model.
	ErrInvalidModel = errors.New("invalid model")
	// ErrProviderUnavailable is returned when the provider backing a request
	// has no credentials configured.
	ErrProviderUnavailable = errors.New("AI provider is not configured")
	// ErrEmptyInput is returned for requests with nothing to process.
	ErrEmptyInput = errors.New("input is empty")
)

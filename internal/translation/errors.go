package translation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProviderUnavailable means the provider client could not be used at
	// all, for example because base_url or model is missing.
	ErrProviderUnavailable = errors.New("translation provider is not usable")
	// ErrEmptyResponse means the provider answered without usable content.
	ErrEmptyResponse = errors.New("empty response from translation provider")
)

// TransportError is a network-level failure reaching a provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError is a non-success response from a provider or from the
// fallback endpoint.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "unknown error"
	}
	if e.Status == 0 {
		return msg
	}
	return fmt.Sprintf("status %d: %s", e.Status, msg)
}

// Attempt records one failed provider call, in configured order.
type Attempt struct {
	Provider string
	Err      error
}

// ChainError aggregates every failed provider attempt plus the fallback
// failure. It is the only error the chain ever returns.
type ChainError struct {
	Attempts    []Attempt
	FallbackErr error
}

func (e *ChainError) Error() string {
	parts := make([]string, 0, len(e.Attempts)+1)
	for _, attempt := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", attempt.Provider, attempt.Err))
	}
	if e.FallbackErr != nil {
		parts = append(parts, fmt.Sprintf("google: %v", e.FallbackErr))
	}
	if len(parts) == 0 {
		return "translation failed"
	}
	return "translation failed: " + strings.Join(parts, "; ")
}

func (e *ChainError) Unwrap() error {
	return e.FallbackErr
}

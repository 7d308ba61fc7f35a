package frontend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStartup marks failures before the loop entered its running state.
	ErrStartup = errors.New("startup error")
	// ErrFirstPass marks an iteration failure on the first pass, which is
	// fatal after teardown completes.
	ErrFirstPass = errors.New("first iteration failed")
)

// Wrap tags err with the provided marker and operation context so callers
// can classify it with errors.Is while keeping the full cause chain.
func Wrap(marker error, operation string, err error) error {
	operation = strings.TrimSpace(operation)
	if operation == "" {
		operation = "frontend"
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, operation, err)
	}
	return fmt.Errorf("%w: %s", marker, operation)
}

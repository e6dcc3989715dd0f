package nong

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying every failure the manifest core can produce.
// Callers branch with errors.Is; messages carry the detail.
var (
	ErrNotInitialized  = errors.New("song not initialized in manifest")
	ErrNotFound        = errors.New("not found")
	ErrInvariant       = errors.New("invariant violation")
	ErrParse           = errors.New("parse error")
	ErrIO              = errors.New("io error")
	ErrLegacyMigration = errors.New("legacy migration failed")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "manifest failure"
	}
	return strings.Join(parts, ": ")
}

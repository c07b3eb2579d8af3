package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks a numeric parameter outside its declared range.
	ErrValidation = errors.New("validation error")
	// ErrMissingSource marks a required input file that does not exist.
	ErrMissingSource = errors.New("missing source")
	// ErrStageExecution marks a failed external engine invocation.
	ErrStageExecution = errors.New("stage execution error")
	// ErrConfiguration marks an unusable configuration value.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrStageExecution
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsTerminalBeforeWork reports whether the error class forbids running any
// stage at all. Validation and missing-source failures surface before the
// first engine invocation, so no partial artifacts exist.
func IsTerminalBeforeWork(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrMissingSource) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

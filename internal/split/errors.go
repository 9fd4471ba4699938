package split

import (
	"errors"
	"fmt"
)

var (
	ErrDragInProgress   = errors.New("split: drag in progress")
	ErrStaleSession     = errors.New("split: drag session is no longer active")
	ErrDisabled         = errors.New("split: split is disabled")
	ErrGutterOutOfRange = errors.New("split: gutter index out of range")
)

// Reason identifies which configuration invariant was violated.
type Reason string

const (
	ReasonMultipleWildcards Reason = "multiple_wildcards"
	ReasonPixelNoWildcard   Reason = "pixel_no_wildcard"
	ReasonPercentTotal      Reason = "percent_total"
	ReasonAutoPixel         Reason = "auto_pixel"
	ReasonWildcardBounds    Reason = "wildcard_bounds"
	ReasonAboveMax          Reason = "above_max"
	ReasonBelowMin          Reason = "below_min"
	ReasonLockedWildcard    Reason = "locked_wildcard"
	ReasonInvalidConfig     Reason = "invalid_config"
)

// ConfigurationError reports a split or pane configuration that violates a
// size invariant. Pane is the offending pane index, or -1 for split-wide errors.
type ConfigurationError struct {
	Reason  Reason
	Pane    int
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Pane >= 0 {
		return fmt.Sprintf("split: pane %d: %s", e.Pane, e.Message)
	}
	return "split: " + e.Message
}

func configErr(reason Reason, pane int, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Pane: pane, Message: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

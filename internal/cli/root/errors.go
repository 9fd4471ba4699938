package root

import (
	"errors"
	"fmt"

	"github.com/regenrek/splitpanes/internal/layoutfile"
	"github.com/regenrek/splitpanes/internal/split"
)

type missingHandlerError string

func (e missingHandlerError) Error() string {
	return fmt.Sprintf("missing CLI handler for %s", string(e))
}

// Error codes used in JSON error envelopes.
const (
	CodeConfiguration = "configuration_error"
	CodeNotFound      = "not_found"
	CodeUsage         = "usage_error"
	CodeFailed        = "command_failed"
)

// ErrorCode classifies err for the JSON error envelope.
func ErrorCode(err error) string {
	var notFound *layoutfile.NotFoundError
	var usage *UsageError
	switch {
	case split.IsConfigurationError(err):
		return CodeConfiguration
	case errors.As(err, &notFound):
		return CodeNotFound
	case errors.As(err, &usage):
		return CodeUsage
	default:
		return CodeFailed
	}
}

func errorDetails(err error) map[string]any {
	var cfgErr *split.ConfigurationError
	if errors.As(err, &cfgErr) {
		details := map[string]any{"reason": string(cfgErr.Reason)}
		if cfgErr.Pane >= 0 {
			details["pane"] = cfgErr.Pane
		}
		return details
	}
	var notFound *layoutfile.NotFoundError
	if errors.As(err, &notFound) && len(notFound.Suggestions) > 0 {
		return map[string]any{"suggestions": notFound.Suggestions}
	}
	return nil
}

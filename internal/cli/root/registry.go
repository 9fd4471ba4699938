package root

import (
	"errors"
	"fmt"
	"sort"

	"github.com/regenrek/splitpanes/internal/cli/spec"
)

// Handler executes a command.
type Handler func(ctx CommandContext) error

// Registry maps command IDs to handlers.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler for a command ID, replacing any earlier one. Empty
// IDs and nil handlers are ignored.
func (r *Registry) Register(id string, handler Handler) {
	if r == nil || id == "" || handler == nil {
		return
	}
	r.handlers[id] = handler
}

func (r *Registry) HandlerFor(id string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[id]
	return h, ok
}

// EnsureHandlers checks the registry against doc: every leaf command needs a
// handler, and every handler must belong to a command in doc. Parent commands
// may have one (they run when called without a subcommand).
func (r *Registry) EnsureHandlers(doc *spec.Spec) error {
	if r == nil || doc == nil {
		return nil
	}
	known := make(map[string]bool)
	var errs []error
	for _, cmd := range doc.AllCommands() {
		known[cmd.ID] = true
		if len(cmd.Subcommands) > 0 {
			continue
		}
		if _, ok := r.handlers[cmd.ID]; !ok {
			errs = append(errs, missingHandlerError(cmd.ID))
		}
	}
	stale := make([]string, 0)
	for id := range r.handlers {
		if !known[id] {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	for _, id := range stale {
		errs = append(errs, fmt.Errorf("handler registered for unknown command %s", id))
	}
	return errors.Join(errs...)
}

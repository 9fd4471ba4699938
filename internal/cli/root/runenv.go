package root

import (
	"fmt"
	"os"

	"github.com/regenrek/splitpanes/internal/runenv"
)

// applyFreshConfig exports SPLITPANES_FRESH_CONFIG=1 for the rest of the run,
// so every config loader in the process skips the user file. The returned
// func puts the previous value back.
func applyFreshConfig(enabled bool) (func(), error) {
	if !enabled {
		return func() {}, nil
	}
	return overrideEnv(runenv.FreshConfigEnv, "1")
}

func overrideEnv(key, value string) (func(), error) {
	prev, had := os.LookupEnv(key)
	restore := func() {
		if had {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	}
	if err := os.Setenv(key, value); err != nil {
		restore()
		return nil, fmt.Errorf("set %s: %w", key, err)
	}
	return restore, nil
}

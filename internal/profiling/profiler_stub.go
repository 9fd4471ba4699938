//go:build !profiler

package profiling

import "context"

// Available reports whether this binary was built with the profiler tag.
const Available = false

// Start is a no-op unless built with -tags profiler.
func Start(context.Context) func() { return func() {} }

package simulate

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/regenrek/splitpanes/internal/cli/output"
	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/gesture"
	"github.com/regenrek/splitpanes/internal/split"
	"github.com/regenrek/splitpanes/internal/userpath"
)

type stepKind string

const (
	stepPress   stepKind = "press"
	stepMove    stepKind = "move"
	stepRelease stepKind = "release"
	stepWait    stepKind = "wait"
	stepCancel  stepKind = "cancel"
)

// step is one line of a replay script.
type step struct {
	kind   stepKind
	gutter int
	point  split.Point
	wait   time.Duration
}

// parseScript splits a script on ';' and newlines and tokenizes each step
// with shell quoting rules. Blank steps and '#' comments are skipped.
func parseScript(script string) ([]step, error) {
	var out []step
	lines := strings.FieldsFunc(script, func(r rune) bool { return r == ';' || r == '\n' })
	for _, line := range lines {
		words, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("replay: %q: %w", strings.TrimSpace(line), err)
		}
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		st, err := parseStep(words)
		if err != nil {
			return nil, fmt.Errorf("replay: step %d: %w", len(out)+1, err)
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("replay: script has no steps")
	}
	return out, nil
}

func parseStep(words []string) (step, error) {
	kind := stepKind(strings.ToLower(words[0]))
	args := words[1:]
	nums := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return step{}, fmt.Errorf("%s: invalid number %q", kind, arg)
		}
		nums[i] = v
	}
	switch kind {
	case stepPress:
		if len(nums) != 3 {
			return step{}, fmt.Errorf("press wants GUTTER X Y")
		}
		return step{kind: kind, gutter: int(nums[0]), point: split.Point{X: nums[1], Y: nums[2]}}, nil
	case stepMove, stepRelease:
		if len(nums) != 2 {
			return step{}, fmt.Errorf("%s wants X Y", kind)
		}
		return step{kind: kind, point: split.Point{X: nums[0], Y: nums[1]}}, nil
	case stepWait:
		if len(nums) != 1 || nums[0] < 0 {
			return step{}, fmt.Errorf("wait wants a non-negative MS")
		}
		return step{kind: kind, wait: time.Duration(nums[0] * float64(time.Millisecond))}, nil
	case stepCancel:
		if len(nums) != 0 {
			return step{}, fmt.Errorf("cancel takes no arguments")
		}
		return step{kind: kind}, nil
	default:
		return step{}, fmt.Errorf("unknown step %q", words[0])
	}
}

// replay feeds steps through a gesture tracker on a virtual clock and returns
// every split event it produced. Pending clicks are flushed at the end.
func replay(s *split.Split, steps []step, extent float64) ([]output.ReplayEvent, error) {
	var events []output.ReplayEvent
	current := 0
	unsubscribe := s.Subscribe(func(ev split.Event) {
		sizes := make([]string, len(ev.Sizes))
		for i, size := range ev.Sizes {
			sizes[i] = size.String()
		}
		events = append(events, output.ReplayEvent{Step: current, Kind: ev.Kind.String(), Gutter: ev.GutterIndex, Sizes: sizes})
	})
	defer unsubscribe()

	tracker := gesture.NewTracker(s, func() split.Measurer { return s.ExtentMeasurer(extent) })
	now := time.Unix(0, 0)
	for i, st := range steps {
		current = i + 1
		var err error
		switch st.kind {
		case stepPress:
			tracker.Press(st.gutter, st.point, now)
		case stepMove:
			err = tracker.Move(st.point)
		case stepRelease:
			err = tracker.Release(st.point, now)
		case stepWait:
			now = now.Add(st.wait)
			tracker.Tick(now)
		case stepCancel:
			tracker.Cancel()
		}
		if err != nil {
			return events, fmt.Errorf("replay: step %d (%s): %w", current, st.kind, err)
		}
	}
	current = len(steps) + 1
	if deadline, ok := tracker.Deadline(); ok {
		tracker.Tick(deadline)
	}
	tracker.Cancel()
	return events, nil
}

func runReplay(ctx root.CommandContext) error {
	start := time.Now()
	script := ctx.Cmd.String("script")
	if path := strings.TrimSpace(ctx.Cmd.String("file")); path != "" {
		data, err := readScript(ctx, path)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		script = string(data)
	}
	steps, err := parseScript(script)
	if err != nil {
		return err
	}
	l, err := loadLayout(ctx)
	if err != nil {
		return err
	}
	extent := ctx.Cmd.Float("extent")
	events, err := replay(l.split, steps, extent)
	if err != nil {
		return err
	}
	result := output.ReplayResult{
		Layout: l.info.Name,
		Events: events,
		Final:  layoutState(l.info.Name, l.split, extent),
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("replay", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, result)
	}
	for _, ev := range result.Events {
		if _, err := fmt.Fprintf(ctx.Out, "step %d: %s gutter %d %v\n", ev.Step, ev.Kind, ev.Gutter, ev.Sizes); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(ctx.Out); err != nil {
		return err
	}
	return writeState(ctx.Out, result.Final)
}

// readScript reads path, or stdin when path is "-".
func readScript(ctx root.CommandContext, path string) ([]byte, error) {
	if path != "-" {
		return os.ReadFile(userpath.Expand(path))
	}
	if ctx.Stdin == nil {
		return nil, fmt.Errorf("no stdin")
	}
	return io.ReadAll(ctx.Stdin)
}

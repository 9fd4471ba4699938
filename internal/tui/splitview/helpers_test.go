package splitview

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/splitpanes/internal/appconfig"
	"github.com/regenrek/splitpanes/internal/layoutfile"
)

const evenLayout = `
version: "1.0"
name: even
direction: horizontal
unit: percent
gutter_size: 1
panes:
  - id: a
    title: A
    size: 50
  - id: b
    title: B
    size: 50
`

const wildcardLayout = `
version: "1.0"
name: wild
direction: horizontal
unit: percent
gutter_size: 1
panes:
  - id: a
    title: A
    size: 50
  - id: b
    title: B
    size: "*"
`

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func staticLoader(t *testing.T, src *string) func() (*layoutfile.Definition, layoutfile.Info, error) {
	t.Helper()
	return func() (*layoutfile.Definition, layoutfile.Info, error) {
		def, err := layoutfile.Parse([]byte(*src))
		if err != nil {
			return nil, layoutfile.Info{}, err
		}
		return def, layoutfile.Info{Name: def.Name, Source: layoutfile.SourceFile}, nil
	}
}

func newTestModel(t *testing.T, src string, mutate func(*Options)) (*Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Unix(1000, 0)}
	layout := src
	opts := Options{
		Load: staticLoader(t, &layout),
		View: appconfig.Defaults().View,
		Now:  clock.Now,
	}
	if mutate != nil {
		mutate(&opts)
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 101, Height: 20})
	return m, clock
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func assertSizes(t *testing.T, m *Model, want ...float64) {
	t.Helper()
	sizes := m.Split().Sizes()
	if len(sizes) != len(want) {
		t.Fatalf("Sizes() len = %d, want %d", len(sizes), len(want))
	}
	for i, s := range sizes {
		if d := s.Value() - want[i]; d > 0.001 || d < -0.001 {
			t.Fatalf("Sizes()[%d] = %v, want %v (all %v)", i, s, want[i], sizes)
		}
	}
}

package splitview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/splitpanes/internal/appconfig"
	"github.com/regenrek/splitpanes/internal/split"
)

type keyMap struct {
	quit      key.Binding
	focusNext key.Binding
	focusPrev key.Binding
	move      map[split.Key]key.Binding
	reset     key.Binding
	copy      key.Binding
	reload    key.Binding
	cancel    key.Binding
	help      key.Binding
	toggle    key.Binding
}

type keymapAction struct {
	name     string
	desc     string
	defaults []string
	override []string
	assign   func(*keyMap, key.Binding)
}

func moveAction(name, desc string, k split.Key, override []string) keymapAction {
	return keymapAction{
		name:     name,
		desc:     desc,
		defaults: []string{string(k)},
		override: override,
		assign:   func(m *keyMap, b key.Binding) { m.move[k] = b },
	}
}

func buildKeyMap(cfg appconfig.ViewKeymapConfig) (*keyMap, error) {
	km := &keyMap{move: make(map[split.Key]key.Binding)}
	used := make(map[string]string)
	actions := []keymapAction{
		{
			name:     "quit",
			desc:     "quit",
			defaults: []string{"q", "ctrl+c"},
			override: cfg.Quit,
			assign:   func(m *keyMap, b key.Binding) { m.quit = b },
		},
		{
			name:     "focus_next",
			desc:     "next gutter",
			defaults: []string{"tab"},
			override: cfg.FocusNext,
			assign:   func(m *keyMap, b key.Binding) { m.focusNext = b },
		},
		{
			name:     "focus_prev",
			desc:     "prev gutter",
			defaults: []string{"shift+tab"},
			override: cfg.FocusPrev,
			assign:   func(m *keyMap, b key.Binding) { m.focusPrev = b },
		},
		moveAction("left", "move", split.KeyLeft, cfg.Left),
		moveAction("right", "move", split.KeyRight, cfg.Right),
		moveAction("up", "move", split.KeyUp, cfg.Up),
		moveAction("down", "move", split.KeyDown, cfg.Down),
		moveAction("page_up", "page", split.KeyPageUp, cfg.PageUp),
		moveAction("page_down", "page", split.KeyPageDown, cfg.PageDown),
		{
			name:     "reset",
			desc:     "reset sizes",
			defaults: []string{"0"},
			override: cfg.Reset,
			assign:   func(m *keyMap, b key.Binding) { m.reset = b },
		},
		{
			name:     "copy",
			desc:     "copy layout",
			defaults: []string{"y"},
			override: cfg.Copy,
			assign:   func(m *keyMap, b key.Binding) { m.copy = b },
		},
		{
			name:     "reload",
			desc:     "reload",
			defaults: []string{"r"},
			override: cfg.Reload,
			assign:   func(m *keyMap, b key.Binding) { m.reload = b },
		},
		{
			name:     "cancel",
			desc:     "cancel drag",
			defaults: []string{"esc"},
			override: cfg.Cancel,
			assign:   func(m *keyMap, b key.Binding) { m.cancel = b },
		},
		{
			name:     "help",
			desc:     "help",
			defaults: []string{"?"},
			override: cfg.Help,
			assign:   func(m *keyMap, b key.Binding) { m.help = b },
		},
	}

	// Pane toggles are fixed to the digits so they line up with pane numbers.
	toggleKeys := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for _, k := range toggleKeys {
		used[k] = "toggle"
	}
	km.toggle = key.NewBinding(key.WithKeys(toggleKeys...), key.WithHelp("1-9", "toggle pane"))

	for _, action := range actions {
		keys, err := resolveKeyList(action.name, action.override, action.defaults)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if prev, ok := used[k]; ok {
				return nil, fmt.Errorf("view.keys.%s: key %q already bound to view.keys.%s", action.name, k, prev)
			}
			used[k] = action.name
		}
		binding := key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(formatKeyLabel(keys), action.desc),
		)
		action.assign(km, binding)
	}
	return km, nil
}

var moveKeys = []split.Key{split.KeyLeft, split.KeyRight, split.KeyUp, split.KeyDown, split.KeyPageUp, split.KeyPageDown}

// moveKey returns the split key bound to msg, if any.
func (k *keyMap) moveKey(msg tea.KeyMsg) (split.Key, bool) {
	for _, sk := range moveKeys {
		if key.Matches(msg, k.move[sk]) {
			return sk, true
		}
	}
	return "", false
}

// ShortHelp implements help.KeyMap.
func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focusNext, k.move[split.KeyLeft], k.toggle, k.copy, k.help, k.quit}
}

// FullHelp implements help.KeyMap.
func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.focusNext, k.focusPrev, k.cancel},
		{k.move[split.KeyLeft], k.move[split.KeyRight], k.move[split.KeyUp], k.move[split.KeyDown]},
		{k.move[split.KeyPageUp], k.move[split.KeyPageDown], k.reset, k.toggle},
		{k.copy, k.reload, k.help, k.quit},
	}
}

func resolveKeyList(field string, override, defaults []string) ([]string, error) {
	keys := override
	if len(keys) == 0 {
		keys = defaults
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("view.keys.%s: no keys configured", field)
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, len(keys))
	for _, raw := range keys {
		normalized, err := normalizeKeyString(raw)
		if err != nil {
			return nil, fmt.Errorf("view.keys.%s: %w", field, err)
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out, nil
}

func normalizeKeyString(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("invalid key %q (empty)", raw)
	}
	if value == "+" {
		return value, nil
	}
	parts := strings.Split(value, "+")
	base := strings.TrimSpace(parts[len(parts)-1])
	if base == "" {
		return "", fmt.Errorf("invalid key %q (missing base key)", raw)
	}
	seen := make(map[string]bool)
	for _, modRaw := range parts[:len(parts)-1] {
		mod := strings.ToLower(strings.TrimSpace(modRaw))
		switch mod {
		case "ctrl", "control":
			mod = "ctrl"
		case "alt", "option":
			mod = "alt"
		case "shift":
		default:
			return "", fmt.Errorf("invalid key %q (unknown modifier %q)", raw, modRaw)
		}
		seen[mod] = true
	}
	if utf8.RuneCountInString(base) == 1 && len(seen) > 0 {
		base = strings.ToLower(base)
	}
	if utf8.RuneCountInString(base) > 1 {
		base = strings.ToLower(base)
		if !isSupportedKeyName(base) {
			return "", fmt.Errorf("invalid key %q (unknown key %q)", raw, base)
		}
	}
	// bubbletea reports modifiers in ctrl, alt, shift order.
	var out []string
	for _, mod := range []string{"ctrl", "alt", "shift"} {
		if seen[mod] {
			out = append(out, mod)
		}
	}
	out = append(out, base)
	return strings.Join(out, "+"), nil
}

func isSupportedKeyName(name string) bool {
	switch name {
	case "tab", "enter", "esc", "space", "backspace", "delete", "insert",
		"home", "end", "pgup", "pgdown", "up", "down", "left", "right",
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12":
		return true
	}
	return false
}

func formatKeyLabel(keys []string) string {
	return strings.Join(keys, "/")
}

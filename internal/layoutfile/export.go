package layoutfile

import (
	"bytes"
	"fmt"
	"math"

	"github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
	"gopkg.in/yaml.v3"

	"github.com/regenrek/splitpanes/internal/split"
)

// ExportYAML renders the definition as a layout file.
func ExportYAML(def *Definition) (string, error) {
	if def == nil {
		return "", fmt.Errorf("layoutfile: definition is required")
	}
	out := *def
	if out.Version == "" {
		out.Version = CurrentVersion
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return "", fmt.Errorf("layoutfile: render yaml: %w", err)
	}
	return string(data), nil
}

// ExportKDL renders the definition as a zellij layout. Sizes are the resolved
// effective sizes, so auto panes export their distributed share. Hidden panes
// are left out.
func ExportKDL(def *Definition) (string, error) {
	if def == nil {
		return "", fmt.Errorf("layoutfile: definition is required")
	}
	s, err := def.NewSplit()
	if err != nil {
		return "", err
	}
	return RenderKDL(s)
}

// RenderKDL renders the current state of s as a zellij layout.
func RenderKDL(s *split.Split) (string, error) {
	cfg := s.Config()
	// zellij names the split by the divider: side-by-side panes are a vertical split.
	direction := "vertical"
	if cfg.Direction == split.DirectionVertical {
		direction = "horizontal"
	}

	container := document.NewNode()
	container.SetName("pane")
	container.AddProperty("split_direction", direction, "")
	for i, pane := range s.Panes() {
		if !pane.Visible {
			continue
		}
		node := document.NewNode()
		node.SetName("pane")
		if pane.Title != "" {
			node.AddProperty("name", pane.Title, "")
		}
		size, err := s.EffectiveSize(i)
		if err != nil {
			return "", fmt.Errorf("layoutfile: %w", err)
		}
		if size.IsFixed() {
			value := int64(math.Round(size.Value()))
			if cfg.Unit == split.UnitPercent {
				node.AddProperty("size", fmt.Sprintf("%d%%", value), "")
			} else {
				node.AddProperty("size", value, "")
			}
		}
		container.AddNode(node)
	}

	root := document.NewNode()
	root.SetName("layout")
	root.AddNode(container)

	doc := document.New()
	doc.AddNode(root)
	var buf bytes.Buffer
	if err := kdl.Generate(doc, &buf); err != nil {
		return "", fmt.Errorf("layoutfile: render kdl: %w", err)
	}
	return buf.String(), nil
}

package output

// PaneSize is one pane's state after an operation.
type PaneSize struct {
	Index   int      `json:"index"`
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Size    string   `json:"size"`
	Extent  float64  `json:"extent"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Visible bool     `json:"visible"`
	Locked  bool     `json:"locked,omitempty"`
}

// LayoutState describes a split resolved in a container.
type LayoutState struct {
	Layout    string     `json:"layout"`
	Direction string     `json:"direction"`
	Unit      string     `json:"unit"`
	Extent    float64    `json:"extent"`
	Template  string     `json:"template"`
	Panes     []PaneSize `json:"panes"`
}

type ValidateResult struct {
	Layout string `json:"layout"`
	Path   string `json:"path,omitempty"`
	Valid  bool   `json:"valid"`
	Panes  int    `json:"panes"`
}

// DragStep is the state after one drag session or key press.
type DragStep struct {
	Gutter int      `json:"gutter"`
	Offset float64  `json:"offset,omitempty"`
	Key    string   `json:"key,omitempty"`
	Moved  bool     `json:"moved"`
	Sizes  []string `json:"sizes"`
}

type DragResult struct {
	Layout string      `json:"layout"`
	Steps  []DragStep  `json:"steps"`
	Final  LayoutState `json:"final"`
}

// ReplayEvent is one split event observed during a replay.
type ReplayEvent struct {
	Step   int      `json:"step"`
	Kind   string   `json:"kind"`
	Gutter int      `json:"gutter"`
	Sizes  []string `json:"sizes"`
}

type ReplayResult struct {
	Layout string        `json:"layout"`
	Events []ReplayEvent `json:"events"`
	Final  LayoutState   `json:"final"`
}

type LayoutSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Path        string `json:"path,omitempty"`
}

type LayoutList struct {
	Layouts []LayoutSummary `json:"layouts"`
	Total   int             `json:"total"`
}

type LayoutExport struct {
	Name    string `json:"name"`
	Format  string `json:"format"`
	Content string `json:"content,omitempty"`
	Path    string `json:"path,omitempty"`
}

type VersionInfo struct {
	Version       string `json:"version"`
	SchemaVersion string `json:"schema_version"`
	LayoutVersion string `json:"layout_version"`
}

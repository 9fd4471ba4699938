package split

type EventKind int

const (
	EventDragStart EventKind = iota + 1
	EventDragEnd
	EventGutterClick
	EventGutterDoubleClick
	EventSizesChanged
)

func (k EventKind) String() string {
	switch k {
	case EventDragStart:
		return "drag_start"
	case EventDragEnd:
		return "drag_end"
	case EventGutterClick:
		return "gutter_click"
	case EventGutterDoubleClick:
		return "gutter_double_click"
	case EventSizesChanged:
		return "sizes_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. GutterIndex is -1 when the change did not
// come from a gutter. Sizes holds the effective size of every visible pane.
type Event struct {
	Kind        EventKind
	GutterIndex int
	Sizes       []Size
}

// Listener receives split events synchronously, in emission order.
type Listener func(Event)

// Subscribe registers fn and returns a function that removes it.
func (s *Split) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenerOrder = append(s.listenerOrder, id)
	return func() {
		delete(s.listeners, id)
		for i, candidate := range s.listenerOrder {
			if candidate == id {
				s.listenerOrder = append(s.listenerOrder[:i], s.listenerOrder[i+1:]...)
				break
			}
		}
	}
}

func (s *Split) emit(kind EventKind, gutter int) {
	if len(s.listenerOrder) == 0 {
		return
	}
	ev := Event{Kind: kind, GutterIndex: gutter, Sizes: s.Sizes()}
	order := append([]int(nil), s.listenerOrder...)
	for _, id := range order {
		if fn, ok := s.listeners[id]; ok {
			fn(ev)
		}
	}
}

// GutterClicked emits a click event for a gutter.
func (s *Split) GutterClicked(gutter int) {
	s.emit(EventGutterClick, gutter)
}

// GutterDoubleClicked emits a double click event for a gutter.
func (s *Split) GutterDoubleClicked(gutter int) {
	s.emit(EventGutterDoubleClick, gutter)
}

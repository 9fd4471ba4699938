package split

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Direction int

const (
	DirectionHorizontal Direction = iota
	DirectionVertical
)

func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "horizontal"/"vertical" (case-insensitive); empty means horizontal.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "horizontal", "h":
		return DirectionHorizontal, nil
	case "vertical", "v":
		return DirectionVertical, nil
	default:
		return DirectionHorizontal, fmt.Errorf("split: invalid direction %q", raw)
	}
}

type Unit int

const (
	UnitPercent Unit = iota
	UnitPixel
)

func (u Unit) String() string {
	switch u {
	case UnitPixel:
		return "pixel"
	case UnitPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// ParseUnit accepts "percent"/"pixel"; empty means percent.
func ParseUnit(raw string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "percent", "%":
		return UnitPercent, nil
	case "pixel", "px":
		return UnitPixel, nil
	default:
		return UnitPercent, fmt.Errorf("split: invalid unit %q", raw)
	}
}

// TextDir is the reading direction of the host. It only affects horizontal splits.
type TextDir int

const (
	TextDirLTR TextDir = iota
	TextDirRTL
)

func (d TextDir) String() string {
	if d == TextDirRTL {
		return "rtl"
	}
	return "ltr"
}

func ParseTextDir(raw string) (TextDir, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "ltr":
		return TextDirLTR, nil
	case "rtl":
		return TextDirRTL, nil
	default:
		return TextDirLTR, fmt.Errorf("split: invalid dir %q", raw)
	}
}

type sizeKind uint8

const (
	sizeFixed sizeKind = iota
	sizeWildcard
	sizeAuto
)

// Size is a pane size or bound: a fixed number, the wildcard "*", or "auto".
// The zero value is Fixed(0).
type Size struct {
	kind  sizeKind
	value float64
}

func Fixed(v float64) Size { return Size{kind: sizeFixed, value: v} }

func Wildcard() Size { return Size{kind: sizeWildcard} }

func Auto() Size { return Size{kind: sizeAuto} }

func (s Size) IsFixed() bool    { return s.kind == sizeFixed }
func (s Size) IsWildcard() bool { return s.kind == sizeWildcard }
func (s Size) IsAuto() bool     { return s.kind == sizeAuto }

// Value returns the fixed value, or 0 for wildcard and auto sizes.
func (s Size) Value() float64 {
	if s.kind != sizeFixed {
		return 0
	}
	return s.value
}

func (s Size) String() string {
	switch s.kind {
	case sizeWildcard:
		return "*"
	case sizeAuto:
		return "auto"
	default:
		return strconv.FormatFloat(s.value, 'f', -1, 64)
	}
}

// ParseSize parses a declared pane size. Empty input and "auto" are auto sizes.
func ParseSize(raw string) (Size, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "auto":
		return Auto(), nil
	case "*":
		return Wildcard(), nil
	}
	return parseFixed(value)
}

// ParseBound parses a min/max bound. Empty input and "*" are unbounded.
func ParseBound(raw string) (Size, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "*":
		return Wildcard(), nil
	case "auto":
		return Size{}, fmt.Errorf("split: bound cannot be %q", raw)
	}
	return parseFixed(value)
}

func parseFixed(value string) (Size, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(value, "%"), "px")
	n, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Size{}, fmt.Errorf("split: invalid size %q", value)
	}
	if n < 0 {
		return Size{}, fmt.Errorf("split: size %q must not be negative", value)
	}
	return Fixed(n), nil
}

// Point is a pointer or keyboard coordinate in host pixels.
type Point struct {
	X float64
	Y float64
}

func roundWithPrecision(num float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(num*p) / p
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

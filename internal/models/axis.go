package models

import (
	"fmt"
	"strings"
)

// Axis is the volume dimension collapsed by a projection
type Axis int

const (
	// AxisX reduces along the width of each frame (front view)
	AxisX Axis = iota
	// AxisY reduces along the height of each frame (side view)
	AxisY
	// AxisZ reduces across frames (top view)
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Valid reports whether a is one of the three known axes
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}

// ParseAxis converts "x", "y" or "z" (any case) to an Axis
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("axis %q (must be x, y or z): %w", s, ErrInvalidArgument)
}

// Criterion is the reduction applied to the samples along an axis
type Criterion int

const (
	Max Criterion = iota
	Min
	Mean
	Median
)

func (c Criterion) String() string {
	switch c {
	case Max:
		return "max"
	case Min:
		return "min"
	case Mean:
		return "mean"
	case Median:
		return "median"
	}
	return fmt.Sprintf("criterion(%d)", int(c))
}

// Valid reports whether c is one of the four known criteria
func (c Criterion) Valid() bool {
	return c >= Max && c <= Median
}

// ParseCriterion accepts max, min, prom/mean and med/median (any case)
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max":
		return Max, nil
	case "min":
		return Min, nil
	case "prom", "mean":
		return Mean, nil
	case "med", "median":
		return Median, nil
	}
	return 0, fmt.Errorf("criterion %q (use max, min, prom or med): %w", s, ErrInvalidArgument)
}

// DimensionPolicy decides how a volume treats frames of different sizes
type DimensionPolicy string

const (
	// PolicyStrict rejects any frame whose size differs from the first frame
	PolicyStrict DimensionPolicy = "strict"
	// PolicyPad grows the volume to the largest frame and zero-fills the rest
	PolicyPad DimensionPolicy = "pad"
)

// ParsePolicy validates a policy name. An empty name means strict.
func ParsePolicy(s string) (DimensionPolicy, error) {
	switch DimensionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyPad:
		return PolicyPad, nil
	}
	return "", fmt.Errorf("dimension policy %q (must be strict or pad): %w", s, ErrInvalidArgument)
}

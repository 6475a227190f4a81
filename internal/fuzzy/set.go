package fuzzy

import (
	"fmt"
	"math"
)

// Set is a fuzzy set over the real line.
type Set interface {
	// Membership returns the degree of x to the set, always within [0,1].
	Membership(x float64) float64
	// Points returns the control points of the set.
	Points() []float64
}

// Trapezoid is a trapezoidal fuzzy set.
// It is 0 outside [p1,p4], 1 on [p2,p3] and linear in between.
type Trapezoid struct {
	p1, p2, p3, p4 float64
}

// Trapezoidal creates a new trapezoidal fuzzy set.
func Trapezoidal(p1, p2, p3, p4 float64) (*Trapezoid, error) {
	if err := sorted(p1, p2, p3, p4); err != nil {
		return nil, fmt.Errorf("trapezoid [%v %v %v %v]: %w", p1, p2, p3, p4, err)
	}
	return &Trapezoid{p1: p1, p2: p2, p3: p3, p4: p4}, nil
}

// Membership evaluates the trapezoid at x.
// Equal control points act as steps, the plateau [p2,p3] always wins.
// NaN belongs to no set.
func (t *Trapezoid) Membership(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= t.p2 && x <= t.p3:
		return 1
	case x <= t.p1 || x >= t.p4:
		return 0
	case x < t.p2:
		// p1 < x < p2 , so the ramp is never flat here
		return (x - t.p1) / (t.p2 - t.p1)
	default:
		return (t.p4 - x) / (t.p4 - t.p3)
	}
}

// Points returns the four control points.
func (t *Trapezoid) Points() []float64 {
	return []float64{t.p1, t.p2, t.p3, t.p4}
}

func (t *Trapezoid) String() string {
	return fmt.Sprintf("trapezoid[%v %v %v %v]", t.p1, t.p2, t.p3, t.p4)
}

// Triangle is a triangular fuzzy set peaking at b.
type Triangle struct {
	Trapezoid
}

// Triangular creates a new triangular fuzzy set.
func Triangular(a, b, c float64) (*Triangle, error) {
	if err := sorted(a, b, c); err != nil {
		return nil, fmt.Errorf("triangle [%v %v %v]: %w", a, b, c, err)
	}
	return &Triangle{Trapezoid{p1: a, p2: b, p3: b, p4: c}}, nil
}

// Points returns the three control points.
func (t *Triangle) Points() []float64 {
	return []float64{t.p1, t.p2, t.p4}
}

func (t *Triangle) String() string {
	return fmt.Sprintf("triangle[%v %v %v]", t.p1, t.p2, t.p4)
}

func sorted(pp ...float64) error {
	for i, p := range pp {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("control point %d is not finite: %w", i, ConfigurationErr)
		}
		if i > 0 && pp[i-1] > p {
			return fmt.Errorf("control points are not sorted: %w", ConfigurationErr)
		}
	}
	return nil
}

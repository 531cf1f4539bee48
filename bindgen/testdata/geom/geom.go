// Package geom is a fixture for introspection tests.
package geom

import (
	"errors"
	"math"
)

//bridgen:export
type Point struct {
	X, Y    float64
	Label   string
	Weights []float64
	hidden  int
}

//bridgen:export
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

//bridgen:export
func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

//bridgen:export
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

//bridgen:export attach=Point
func Origin() Point {
	return Point{}
}

//bridgen:export
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

//bridgen:export
func SafeSqrt(x float64) (float64, bool) {
	if x < 0 {
		return 0, false
	}
	return math.Sqrt(x), true
}

//bridgen:export unsafe
func RawWeight(p *Point, i int) float64 {
	return p.Weights[i]
}

func internalHelper() int {
	return int(0)
}

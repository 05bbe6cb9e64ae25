package shapes

import "image/color"

// Point is a location on the plane.
//
//buildergen:builder
type Point struct {
	x, y int
}

// NewPoint returns a new Point.
func NewPoint(x, y int) *Point {
	return &Point{x: x, y: y}
}

// Circle is a filled circle.
//
//buildergen:builder
type Circle struct {
	center *Point
	radius float64
	fill   color.RGBA
	id     int `builder:"-"`
}

// NewCircle returns a new Circle.
func NewCircle(center *Point, radius float64) *Circle {
	return &Circle{center: center, radius: radius}
}

// Area returns the area of the circle.
//
//buildergen:builder
func (c *Circle) Area() float64 {
	return 3.14159 * c.radius * c.radius
}

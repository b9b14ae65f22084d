package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// World is an ordered collection of shapes searched by linear scan.
// It is itself a Shape, so worlds nest.
type World struct {
	Shapes []Shape
}

// NewWorld creates a world holding the given shapes in order
func NewWorld(shapes ...Shape) *World {
	return &World{Shapes: shapes}
}

// Add appends shapes to the world
func (w *World) Add(shapes ...Shape) {
	w.Shapes = append(w.Shapes, shapes...)
}

// Len returns the number of shapes in the world
func (w *World) Len() int {
	return len(w.Shapes)
}

// Hit returns the nearest intersection across all shapes.
// Each hit narrows tMax for the shapes scanned after it, and on an exact tie
// the shape earlier in the list wins.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range w.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

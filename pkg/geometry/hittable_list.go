package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// HittableList is a linear aggregate of hittables. Members can only be added.
type HittableList struct {
	objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends an object and grows the cached bounding box
func (l *HittableList) Add(object Hittable) {
	l.bbox = l.bbox.Union(object.BoundingBox())
	l.objects = append(l.objects, object)
}

// Objects returns the list members
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Len returns the number of members
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Hit scans every member and keeps the closest hit
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all members' boxes
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}

package geometry

import (
	"errors"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ErrEmptyScene is returned when a BVH is requested over no primitives
var ErrEmptyScene = errors.New("bvh: no primitives to build from")

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Children are either primitives, lists or further nodes. The tree is immutable once built.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	Box   core.AABB // Union of both children's boxes
}

// NewBVH constructs a BVH from a slice of hittables, choosing split axes with sampler
func NewBVH(objects []Hittable, sampler core.Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}

	// Sorting happens in place, so work on a copy to leave the caller's slice untouched
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, 0, len(objectsCopy), sampler), nil
}

// NewBVHFromList builds a BVH over the members of a list
func NewBVHFromList(list *HittableList, sampler core.Sampler) (*BVHNode, error) {
	return NewBVH(list.Objects(), sampler)
}

// buildBVH recursively builds the tree over objects[start:end].
// The split axis is random per node and the split index is the median by count.
func buildBVH(objects []Hittable, start, end int, sampler core.Sampler) *BVHNode {
	axis := sampler.IntN(0, 2)
	less := func(a, b Hittable) bool {
		return boxCompare(a, b, axis)
	}

	var left, right Hittable
	span := end - start

	switch span {
	case 1:
		// Duplicate the single element so every node stays binary
		left, right = objects[start], objects[start]
	case 2:
		if less(objects[start], objects[start+1]) {
			left, right = objects[start], objects[start+1]
		} else {
			left, right = objects[start+1], objects[start]
		}
	default:
		sub := objects[start:end]
		sort.Slice(sub, func(i, j int) bool {
			return less(sub[i], sub[j])
		})

		mid := start + span/2
		left = buildBVH(objects, start, mid, sampler)
		right = buildBVH(objects, mid, end, sampler)
	}

	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   left.BoundingBox().Union(right.BoundingBox()),
	}
}

// boxCompare orders hittables by the minimum of their bounding box on axis
func boxCompare(a, b Hittable, axis int) bool {
	return a.BoundingBox().Axis(axis).Min < b.BoundingBox().Axis(axis).Min
}

// Hit tests if a ray intersects any object under this node
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// First check if ray hits the bounding box
	if !n.Box.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)

	// The right subtree may only report something closer than the left hit
	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	if rightHit, hitRight := n.Right.Hit(ray, rightT); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox implements the Hittable interface
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int     // Internal BVH nodes
	LeafRefs   int     // Child slots holding a non-BVH hittable
	MaxDepth   int     // Deepest BVH node, root at 0
	AvgDepth   float64 // Mean depth of leaf references
}

// Stats walks the tree and returns statistics about its shape
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafRefs > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafRefs)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range []Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.LeafRefs++
			stats.AvgDepth += float64(depth + 1) // Accumulate depth for average calculation
		}
	}
}

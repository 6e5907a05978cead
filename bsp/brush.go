// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"qbsp/math/vec"
)

// Side is one planar face of a brush. Plane is a PlaneSet handle;
// PlaneFlipped records that the outward normal is the stored plane's
// negation.
type Side struct {
	Plane        int
	PlaneFlipped bool
	Winding      Winding
	TexInfo      int
	// synthetic face, never usable as a splitter
	Bevel bool
	// user-facing
	Visible bool
	// already used as a splitter on an ancestor node
	OnNode bool
	// transient, only valid during one splitter search
	tested bool
}

// FacePlane returns the side's plane oriented so the normal points out of
// the brush
func (s *Side) FacePlane(planes *PlaneSet) Plane {
	p := planes.Get(s.Plane)
	if s.PlaneFlipped {
		return p.Neg()
	}
	return p
}

func (s *Side) Copy() Side {
	c := *s
	c.Winding = s.Winding.Copy()
	return c
}

// Brush is a convex polyhedron, the intersection of its sides'
// half-spaces. Original is the index of the pre-split source brush and is
// stable through all splits.
type Brush struct {
	Sides    []Side
	Bounds   Bounds
	Contents Contents
	Original int

	LMShift        uint8
	FuncAreaportal bool

	// transient PSIDE bits from the splitter search
	side     int
	testside int
}

func (b *Brush) Copy() *Brush {
	c := &Brush{
		Sides:          make([]Side, len(b.Sides)),
		Bounds:         b.Bounds,
		Contents:       b.Contents,
		Original:       b.Original,
		LMShift:        b.LMShift,
		FuncAreaportal: b.FuncAreaportal,
	}
	for i := range b.Sides {
		c.Sides[i] = b.Sides[i].Copy()
	}
	return c
}

func (b *Brush) UpdateBounds() {
	b.Bounds = EmptyBounds()
	for i := range b.Sides {
		for _, p := range b.Sides[i].Winding {
			b.Bounds.AddPoint(p)
		}
	}
}

// Volume triangulates every face to a common corner and sums the
// tetrahedron volumes
func (b *Brush) Volume(planes *PlaneSet) float32 {
	// grab the first valid point as the corner
	var corner vec.Vec3
	found := false
	for i := range b.Sides {
		if len(b.Sides[i].Winding) > 0 {
			corner = b.Sides[i].Winding[0]
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	// make tetrahedrons to all other faces
	var volume float32
	for i := range b.Sides {
		side := &b.Sides[i]
		if len(side.Winding) == 0 {
			continue
		}
		plane := side.FacePlane(planes)
		d := -plane.DistAbove(corner)
		volume += d * side.Winding.Area()
	}
	return volume / 3
}

// MostlyOnSide returns SIDE_FRONT or SIDE_BACK, whichever holds the
// vertex farthest from the plane
func (b *Brush) MostlyOnSide(plane Plane) int {
	var max float32
	side := SIDE_FRONT
	for i := range b.Sides {
		for _, p := range b.Sides[i].Winding {
			d := plane.DistAbove(p)
			if d > max {
				max = d
				side = SIDE_FRONT
			}
			if -d > max {
				max = -d
				side = SIDE_BACK
			}
		}
	}
	return side
}

// createWindings re-derives every side's winding by clipping its base
// winding with all the other sides
func (b *Brush) createWindings(planes *PlaneSet, extent float32) {
	for i := range b.Sides {
		side := &b.Sides[i]
		w := BaseWindingForPlane(side.FacePlane(planes), extent)
		for j := range b.Sides {
			if w == nil {
				break
			}
			if i == j || b.Sides[j].Bevel {
				continue
			}
			plane := b.Sides[j].FacePlane(planes).Neg()
			w, _ = w.Clip(plane, 0, false)
		}
		side.Winding = w
	}
	b.UpdateBounds()
}

// BrushFromBounds creates a new axial brush
func BrushFromBounds(bounds Bounds, planes *PlaneSet, extent float32) *Brush {
	b := &Brush{Sides: make([]Side, 6)}
	for i := 0; i < 3; i++ {
		{
			var plane Plane
			plane.Normal[i] = 1
			plane.Dist = bounds.Maxs[i]

			side := &b.Sides[i]
			side.Plane, side.PlaneFlipped = planes.Intern(plane, true)
		}

		{
			var plane Plane
			plane.Normal[i] = -1
			plane.Dist = -bounds.Mins[i]

			side := &b.Sides[3+i]
			side.Plane, side.PlaneFlipped = planes.Intern(plane, true)
		}
	}
	b.createWindings(planes, extent)
	return b
}

// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"qbsp/conlog"
)

// children whose bounds reach past this after a clip are bogus
const bogusRange = 4096

// SplitBrush cuts brush with the plane into a front and a back piece.
// Either return may be nil; a brush that only barely pokes past the plane
// comes back whole on the side it is mostly on. The input brush is not
// mutated.
func (c *Compiler) SplitBrush(brush *Brush, split Plane) (*Brush, *Brush) {
	// check all points
	var dFront, dBack float32
	for i := range brush.Sides {
		for _, p := range brush.Sides[i].Winding {
			d := split.DistAbove(p)
			if d > 0 && d > dFront {
				dFront = d
			}
			if d < 0 && d < dBack {
				dBack = d
			}
		}
	}
	if dFront < OnEpsilon {
		// only on back
		return nil, brush
	}
	if dBack > -OnEpsilon {
		// only on front
		return brush, nil
	}

	// create a new winding from the split plane
	w := BaseWindingForPlane(split, c.opts.WorldExtent)
	for i := range brush.Sides {
		if w == nil {
			break
		}
		_, w = w.Clip(brush.Sides[i].FacePlane(c.Planes), 0, false)
	}

	if w == nil || w.IsTiny(TinyEdgeLength) {
		// the brush isn't really split
		if brush.MostlyOnSide(split) == SIDE_FRONT {
			return brush, nil
		}
		return nil, brush
	}

	if w.IsHuge(c.opts.WorldExtent) {
		conlog.Warningf("huge winding\n")
	}

	midwinding := w

	// split it for real; start with 2 empty brushes
	var result [2]*Brush
	for i := range result {
		result[i] = &Brush{
			Original:       brush.Original,
			Contents:       brush.Contents,
			LMShift:        brush.LMShift,
			FuncAreaportal: brush.FuncAreaportal,
		}
	}

	// split all the current windings
	for i := range brush.Sides {
		side := &brush.Sides[i]
		front, back := side.Winding.Clip(split, 0, false)
		pieces := [2]Winding{front, back}
		for j := range pieces {
			if pieces[j] == nil {
				continue
			}
			faceCopy := *side
			faceCopy.Winding = pieces[j]
			faceCopy.tested = false
			result[j].Sides = append(result[j].Sides, faceCopy)
		}
	}

	// add the midwinding to both sides
	for i := range result {
		cs := Side{
			TexInfo: c.TexInfos.Skip,
			Visible: false,
			OnNode:  true,
		}
		brushOnFront := i == 0
		// the face touching the plane on the front-side brush has its
		// outward normal opposite the plane's normal
		capPlane := split
		if brushOnFront {
			capPlane = split.Neg()
		}
		cs.Plane, cs.PlaneFlipped = c.Planes.Intern(capPlane, true)
		if brushOnFront {
			cs.Winding = midwinding.Flip()
		} else {
			cs.Winding = midwinding.Copy()
		}
		result[i].Sides = append(result[i].Sides, cs)
	}

	// see if we have valid brushes on both sides
	for i := range result {
		result[i].UpdateBounds()

		bogus := false
		for j := 0; j < 3; j++ {
			if result[i].Bounds.Mins[j] < -bogusRange || result[i].Bounds.Maxs[j] > bogusRange {
				conlog.Printf("bogus brush after clip\n")
				bogus = true
				break
			}
		}
		if len(result[i].Sides) < 3 || bogus {
			result[i] = nil
			continue
		}
		if result[i].Volume(c.Planes) < 1.0 {
			// tiny volume after clip
			result[i] = nil
		}
	}

	if result[0] == nil || result[1] == nil {
		switch {
		case result[0] == nil && result[1] == nil:
			conlog.Printf("split removed brush\n")
			return nil, nil
		case result[0] != nil:
			conlog.Printf("split not on both sides\n")
			return brush, nil
		default:
			conlog.Printf("split not on both sides\n")
			return nil, brush
		}
	}

	return result[0], result[1]
}

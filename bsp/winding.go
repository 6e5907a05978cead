// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"log"
	"runtime/debug"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"qbsp/math/vec"
)

// Winding is a convex polygon, an ordered ring of at least three coplanar
// points. nil means clipped away.
type Winding []vec.Vec3

const (
	// windings with at most two edges longer than this collapse under
	// vertex snapping
	TinyEdgeLength = 0.2
	// dot threshold below which three consecutive points count as a corner
	colinearEpsilon = 0.999
)

// BaseWindingForPlane returns a large square on the plane, sized so that
// every half-space clip within the world extent cuts it down.
func BaseWindingForPlane(p Plane, extent float32) Winding {
	// find the major axis
	max := float32(-1)
	x := -1
	for i := 0; i < 3; i++ {
		v := math32.Abs(p.Normal[i])
		if v > max {
			x = i
			max = v
		}
	}
	if x == -1 {
		debug.PrintStack()
		log.Fatalf("BaseWindingForPlane: no axis found")
	}

	var up vec.Vec3
	switch x {
	case 0, 1:
		up[2] = 1
	case 2:
		up[0] = 1
	}
	v := vec.Dot(up, p.Normal)
	up = vec.Add(up, p.Normal.Scale(-v))
	up = up.Normalize()

	org := p.Normal.Scale(p.Dist)
	right := vec.Cross(up, p.Normal)

	up = up.Scale(extent * 2)
	right = right.Scale(extent * 2)

	return Winding{
		vec.Add(vec.Sub(org, right), up),
		vec.Add(vec.Add(org, right), up),
		vec.Sub(vec.Add(org, right), up),
		vec.Sub(vec.Sub(org, right), up),
	}
}

func (w Winding) Copy() Winding {
	if w == nil {
		return nil
	}
	c := make(Winding, len(w))
	copy(c, w)
	return c
}

// Flip returns the winding with reversed order, facing the other way
func (w Winding) Flip() Winding {
	c := make(Winding, len(w))
	for i := range w {
		c[i] = w[len(w)-1-i]
	}
	return c
}

func (w Winding) Center() vec.Vec3 {
	var c vec.Vec3
	for _, p := range w {
		c = vec.Add(c, p)
	}
	return c.Scale(1 / float32(len(w)))
}

func (w Winding) Area() float32 {
	var total float32
	for i := 2; i < len(w); i++ {
		d1 := vec.Sub(w[i-1], w[0])
		d2 := vec.Sub(w[i], w[0])
		cross := vec.Cross(d1, d2)
		total += 0.5 * cross.Length()
	}
	return total
}

func (w Winding) Bounds() Bounds {
	b := EmptyBounds()
	for _, p := range w {
		b.AddPoint(p)
	}
	return b
}

// Plane returns the plane the winding lies in, facing the winding's front
func (w Winding) Plane() Plane {
	if len(w) < 3 {
		return Plane{Type: PLANE_INVALID}
	}
	v1 := vec.Sub(w[1], w[0])
	v2 := vec.Sub(w[2], w[0])
	normal := vec.Cross(v2, v1)
	normal = normal.Normalize()
	p, _ := FromPlane(normal, vec.DoublePrecDot(w[0], normal), false)
	return p
}

// RemoveColinearPoints drops points that lie on the line through their
// neighbors
func (w Winding) RemoveColinearPoints() Winding {
	out := make(Winding, 0, len(w))
	for i := range w {
		j := (i + 1) % len(w)
		k := (i + len(w) - 1) % len(w)
		v1 := vec.Sub(w[j], w[i])
		v2 := vec.Sub(w[i], w[k])
		v1 = v1.Normalize()
		v2 = v2.Normalize()
		if vec.Dot(v1, v2) < colinearEpsilon {
			out = append(out, w[i])
		}
	}
	if len(out) == len(w) {
		return w
	}
	return out
}

// IsTiny reports whether the winding would be crunched out of existence
// by the vertex snapping
func (w Winding) IsTiny(size float32) bool {
	edges := 0
	for i := 0; i < len(w); i++ {
		j := (i + 1) % len(w)
		delta := vec.Sub(w[j], w[i])
		if delta.Length() > size {
			edges++
			if edges == 3 {
				return false
			}
		}
	}
	return true
}

// IsHuge reports whether the winding still has one of the points from the
// base winding for its plane
func (w Winding) IsHuge(extent float32) bool {
	for i := range w {
		for j := 0; j < 3; j++ {
			if math32.Abs(w[i][j]) > extent {
				return true
			}
		}
	}
	return false
}

// Check validates the winding: enough points, inside the world, coplanar,
// convex, no degenerate edges.
func (w Winding) Check(extent float32) error {
	if len(w) < 3 {
		return errors.Errorf("winding has %d points", len(w))
	}
	plane := w.Plane()
	for i, p := range w {
		for j := 0; j < 3; j++ {
			if math32.Abs(p[j]) > extent {
				return errors.Errorf("point %d outside world: %v", i, p)
			}
		}
		if d := plane.DistAbove(p); math32.Abs(d) > OnEpsilon {
			return errors.Errorf("point %d off plane by %v", i, d)
		}

		next := w[(i+1)%len(w)]
		dir := vec.Sub(next, p)
		if dir.Length() < OnEpsilon {
			return errors.Errorf("degenerate edge at point %d", i)
		}

		// all other points must be behind the edge plane
		edgenormal := vec.Cross(plane.Normal, dir)
		edgenormal = edgenormal.Normalize()
		edgedist := vec.Dot(p, edgenormal) + OnEpsilon
		for k, q := range w {
			if k == i {
				continue
			}
			if vec.Dot(q, edgenormal) > edgedist {
				return errors.Errorf("winding is not convex at point %d", i)
			}
		}
	}
	return nil
}

// Clip splits the winding by the half-space of plane. A winding wholly on
// one side comes back unchanged on that side. A winding lying in the
// plane goes to the front when keepOn is set, to the back otherwise. A
// result ring that degenerates below three points is discarded.
func (w Winding) Clip(split Plane, epsilon float32, keepOn bool) (Winding, Winding) {
	dists := make([]float32, len(w)+1)
	sides := make([]int, len(w)+1)
	var counts [3]int

	for i, p := range w {
		d := split.DistAbove(p)
		dists[i] = d
		switch {
		case d > epsilon:
			sides[i] = SIDE_FRONT
		case d < -epsilon:
			sides[i] = SIDE_BACK
		default:
			sides[i] = SIDE_ON
		}
		counts[sides[i]]++
	}
	dists[len(w)] = dists[0]
	sides[len(w)] = sides[0]

	if keepOn && counts[SIDE_FRONT] == 0 && counts[SIDE_BACK] == 0 {
		return w, nil
	}
	if counts[SIDE_FRONT] == 0 {
		return nil, w
	}
	if counts[SIDE_BACK] == 0 {
		return w, nil
	}

	front := make(Winding, 0, len(w)+4)
	back := make(Winding, 0, len(w)+4)

	for i, p := range w {
		switch sides[i] {
		case SIDE_ON:
			front = append(front, p)
			back = append(back, p)
			continue
		case SIDE_FRONT:
			front = append(front, p)
		case SIDE_BACK:
			back = append(back, p)
		}

		if sides[i+1] == SIDE_ON || sides[i+1] == sides[i] {
			continue
		}

		// generate the split point
		p2 := w[(i+1)%len(w)]
		dot := dists[i] / (dists[i] - dists[i+1])
		var mid vec.Vec3
		for j := 0; j < 3; j++ {
			// avoid round off error when possible
			switch split.Normal[j] {
			case 1:
				mid[j] = split.Dist
			case -1:
				mid[j] = -split.Dist
			default:
				mid[j] = p[j] + dot*(p2[j]-p[j])
			}
		}
		front = append(front, mid)
		back = append(back, mid)
	}

	if len(front) < 3 {
		front = nil
	}
	if len(back) < 3 {
		back = nil
	}
	return front, back
}

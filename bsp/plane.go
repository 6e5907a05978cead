// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/chewxy/math32"

	"qbsp/math/vec"
)

type PlaneType int32

// 0-2: axial plane with positive normal on that axis,
// 3-5: non-axial plane with that dominant axis
const (
	PLANE_X PlaneType = iota
	PLANE_Y
	PLANE_Z
	PLANE_ANYX
	PLANE_ANYY
	PLANE_ANYZ
	PLANE_INVALID PlaneType = -1
)

const (
	// winding vertex vs plane classification
	OnEpsilon = 0.1
	// AABB vs plane classification; if a brush just barely pokes onto the
	// other side, let it slide by without chopping
	PlanesideEpsilon = 0.001
	// plane equality
	NormalEpsilon = 0.0001
	DistEpsilon   = 0.01
	// axial recognition during canonicalization
	AngleEpsilon = 0.000001
)

const (
	PSIDE_FRONT = 1
	PSIDE_BACK  = 2
	PSIDE_BOTH  = PSIDE_FRONT | PSIDE_BACK
	// OR'ed in when one of the brush sides lies on the tested plane
	PSIDE_FACING = 4
)

const (
	SIDE_FRONT = iota
	SIDE_BACK
	SIDE_ON
)

// Plane is {p : Normal*p = Dist} with a unit normal.
type Plane struct {
	Normal vec.Vec3
	Dist   float32
	Type   PlaneType
}

func (p Plane) Neg() Plane {
	return Plane{
		Normal: vec.Sub(vec.Vec3{}, p.Normal),
		Dist:   -p.Dist,
		Type:   p.Type,
	}
}

// DistAbove returns the signed distance of pt from the plane
func (p Plane) DistAbove(pt vec.Vec3) float32 {
	return vec.DoublePrecDot(pt, p.Normal) - p.Dist
}

// FromPlane canonicalizes a plane. Normals within AngleEpsilon of an axis
// are snapped to exactly that axis. If flip is set, a negative-axial or
// negative-dominant plane is negated so the stored plane faces positive;
// the second return reports whether that happened.
func FromPlane(normal vec.Vec3, dist float32, flip bool) (Plane, bool) {
	p := Plane{Normal: normal, Dist: dist, Type: PLANE_INVALID}

	for i := 0; i < 3; i++ {
		if math32.Abs(p.Normal[i]-1) < AngleEpsilon {
			p.Normal = vec.Vec3{}
			p.Normal[i] = 1
			p.Type = PlaneType(i)
			return p, false
		}
		if math32.Abs(p.Normal[i]+1) < AngleEpsilon {
			wasFlipped := false
			p.Normal = vec.Vec3{}
			p.Normal[i] = -1
			if flip {
				p.Normal[i] = 1
				p.Dist = -p.Dist
				wasFlipped = true
			}
			p.Type = PlaneType(i)
			return p, wasFlipped
		}
	}

	ax := math32.Abs(p.Normal[0])
	ay := math32.Abs(p.Normal[1])
	az := math32.Abs(p.Normal[2])

	var nearest int
	if ax >= ay && ax >= az {
		nearest = 0
		p.Type = PLANE_ANYX
	} else if ay >= ax && ay >= az {
		nearest = 1
		p.Type = PLANE_ANYY
	} else {
		nearest = 2
		p.Type = PLANE_ANYZ
	}

	if flip && p.Normal[nearest] < 0 {
		return p.Neg(), true
	}
	return p, false
}

// PlanesEqual is the epsilon comparison used for interning and for the
// FACING and ancestor checks
func PlanesEqual(a, b Plane) bool {
	return math32.Abs(a.Normal[0]-b.Normal[0]) < NormalEpsilon &&
		math32.Abs(a.Normal[1]-b.Normal[1]) < NormalEpsilon &&
		math32.Abs(a.Normal[2]-b.Normal[2]) < NormalEpsilon &&
		math32.Abs(a.Dist-b.Dist) < DistEpsilon
}

// BoxOnPlaneSide returns PSIDE_FRONT, PSIDE_BACK, or PSIDE_BOTH
func BoxOnPlaneSide(bounds Bounds, p Plane) int {
	if p.Type < PLANE_ANYX {
		// axial planes are easy
		side := 0
		if bounds.Maxs[int(p.Type)] > p.Dist+PlanesideEpsilon {
			side |= PSIDE_FRONT
		}
		if bounds.Mins[int(p.Type)] < p.Dist-PlanesideEpsilon {
			side |= PSIDE_BACK
		}
		return side
	}

	// create the proper leading and trailing verts for the box
	var corners [2]vec.Vec3
	for i := 0; i < 3; i++ {
		if p.Normal[i] < 0 {
			corners[0][i] = bounds.Mins[i]
			corners[1][i] = bounds.Maxs[i]
		} else {
			corners[1][i] = bounds.Mins[i]
			corners[0][i] = bounds.Maxs[i]
		}
	}

	dist1 := p.DistAbove(corners[0])
	dist2 := p.DistAbove(corners[1])
	side := 0
	if dist1 >= PlanesideEpsilon {
		side = PSIDE_FRONT
	}
	if dist2 < PlanesideEpsilon {
		side |= PSIDE_BACK
	}
	return side
}

// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/chewxy/math32"

	"qbsp/math/vec"
)

// Bounds is an axis-aligned bounding box
type Bounds struct {
	Mins vec.Vec3
	Maxs vec.Vec3
}

// EmptyBounds returns an inverted box that any AddPoint will fix up
func EmptyBounds() Bounds {
	return Bounds{
		Mins: vec.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Maxs: vec.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

func MakeBounds(mins, maxs vec.Vec3) Bounds {
	return Bounds{Mins: mins, Maxs: maxs}
}

func (b *Bounds) AddPoint(p vec.Vec3) {
	b.Mins = vec.Min(b.Mins, p)
	b.Maxs = vec.Max(b.Maxs, p)
}

func (b *Bounds) Union(o Bounds) {
	b.Mins = vec.Min(b.Mins, o.Mins)
	b.Maxs = vec.Max(b.Maxs, o.Maxs)
}

func (b Bounds) Grow(d float32) Bounds {
	e := vec.Vec3{d, d, d}
	return Bounds{
		Mins: vec.Sub(b.Mins, e),
		Maxs: vec.Add(b.Maxs, e),
	}
}

func (b Bounds) Contains(p vec.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Mins[i] || p[i] > b.Maxs[i] {
			return false
		}
	}
	return true
}

// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"sync"

	"github.com/chewxy/math32"
)

// PlaneSet deduplicates the planes of a build. Handles are stable for the
// life of the tree. Lookups run concurrently; inserts serialize, which is
// rare once the brush planes are in.
type PlaneSet struct {
	mu     sync.RWMutex
	planes []Plane
	// bucket by quantized distance so epsilon-close duplicates collapse
	hash map[int][]int
}

func NewPlaneSet() *PlaneSet {
	return &PlaneSet{hash: make(map[int][]int)}
}

func planeHash(p Plane) int {
	return int(math32.Floor(math32.Abs(p.Dist)))
}

func (s *PlaneSet) find(p Plane) int {
	key := planeHash(p)
	for k := key - 1; k <= key+1; k++ {
		for _, i := range s.hash[k] {
			if PlanesEqual(s.planes[i], p) {
				return i
			}
		}
	}
	return -1
}

// Intern canonicalizes the plane (positive orientation if flip is set),
// then returns the handle of the stored copy, adding one if needed. The
// second return reports whether canonicalization flipped the plane.
func (s *PlaneSet) Intern(p Plane, flip bool) (int, bool) {
	cp, wasFlipped := FromPlane(p.Normal, p.Dist, flip)

	s.mu.RLock()
	i := s.find(cp)
	s.mu.RUnlock()
	if i >= 0 {
		return i, wasFlipped
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.find(cp); i >= 0 {
		// lost the race to another writer
		return i, wasFlipped
	}
	i = len(s.planes)
	s.planes = append(s.planes, cp)
	key := planeHash(cp)
	s.hash[key] = append(s.hash[key], i)
	return i, wasFlipped
}

func (s *PlaneSet) Get(i int) Plane {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planes[i]
}

func (s *PlaneSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.planes)
}

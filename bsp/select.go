// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"log"
	"runtime/debug"
)

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// testBrushToPlane classifies the brush against the plane: a PSIDE value,
// possibly with PSIDE_FACING when a brush side lies in the plane. For a
// straddling brush it also counts the visible-face splits the plane would
// cause, reports whether any split face is hint textured, and whether any
// vertex sits in the (0,1) danger band on either side of the plane.
func (c *Compiler) testBrushToPlane(brush *Brush, plane Plane) (s, numsplits int, hintsplit, epsilonbrush bool) {
	// if the brush actually uses the plane, we can tell the side for sure
	for i := range brush.Sides {
		if PlanesEqual(c.Planes.Get(brush.Sides[i].Plane), plane) {
			if !brush.Sides[i].PlaneFlipped {
				return PSIDE_BACK | PSIDE_FACING, 0, false, false
			}
			return PSIDE_FRONT | PSIDE_FACING, 0, false, false
		}
	}

	s = BoxOnPlaneSide(brush.Bounds, plane)
	if s != PSIDE_BOTH {
		return s, 0, false, false
	}

	// if both sides, count the visible faces split
	for i := range brush.Sides {
		side := &brush.Sides[i]
		if side.OnNode {
			continue // on node, don't worry about splits
		}
		if !side.Visible {
			continue // we don't care about non-visible
		}
		if len(side.Winding) == 0 {
			continue
		}
		front, back := 0, 0
		for _, p := range side.Winding {
			d := plane.DistAbove(p)
			if (d > 0 && d < 1) || (d < 0 && d > -1) {
				epsilonbrush = true
			}
			if d > OnEpsilon {
				front = 1
			}
			if d < -OnEpsilon {
				back = 1
			}
		}
		if front != 0 && back != 0 {
			ti := c.TexInfos.Get(side.TexInfo)
			if !ti.HintSkip {
				numsplits++
				if ti.Hint {
					hintsplit = true
				}
			}
		}
	}

	return s, numsplits, hintsplit, epsilonbrush
}

func checkPlaneAgainstParents(plane Plane, node *Node) {
	for p := node.Parent; p != nil; p = p.Parent {
		if PlanesEqual(p.Plane, plane) {
			debug.PrintStack()
			log.Fatalf("checkPlaneAgainstParents: tried parent")
		}
	}
}

func (c *Compiler) checkPlaneAgainstVolume(plane Plane, node *Node) bool {
	front, back := c.SplitBrush(node.Volume.Copy(), plane)
	return front != nil && back != nil
}

// selectSplitSide chooses one of the sides out of the brush list to
// partition the brushes with, using a heuristic. Returns nil if there is
// no valid plane to split with, which makes the node a leaf.
//
// The search order goes: visible-structural, visible-detail,
// nonvisible-structural, nonvisible-detail. If any valid plane is
// available in a pass, no further passes are tried.
func (c *Compiler) selectSplitSide(brushes []*Brush, node *Node) *Side {
	var bestside *Side
	bestvalue := -99999

	const numpasses = 4
	for pass := 0; pass < numpasses; pass++ {
		for _, brush := range brushes {
			if pass&1 == 1 && !c.game.IsAnyDetail(brush.Contents) {
				continue
			}
			if pass&1 == 0 && c.game.IsAnyDetail(brush.Contents) {
				continue
			}
			for si := range brush.Sides {
				side := &brush.Sides[si]
				if side.Bevel {
					continue // never use a bevel as a splitter
				}
				if len(side.Winding) == 0 {
					continue // nothing visible, so it can't split
				}
				if side.OnNode {
					continue // already a node splitter
				}
				if side.tested {
					continue // we already have metrics for this plane
				}
				if c.TexInfos.Get(side.TexInfo).HintSkip {
					continue // skip surfaces are never chosen
				}
				if side.Visible != (pass < 2) {
					continue // only check visible faces on first passes
				}

				// always use the positive facing plane
				stored := c.Planes.Get(side.Plane)
				plane, _ := FromPlane(stored.Normal, stored.Dist, true)

				checkPlaneAgainstParents(plane, node)

				if !c.checkPlaneAgainstVolume(plane, node) {
					continue // would produce a tiny volume
				}

				front, back, facing, splits := 0, 0, 0, 0
				epsilonbrush := 0
				hintsplit := false

				for _, test := range brushes {
					s, bsplits, bhint, beps := c.testBrushToPlane(test, plane)

					splits += bsplits
					if bsplits != 0 && s&PSIDE_FACING != 0 {
						debug.PrintStack()
						log.Fatalf("selectSplitSide: PSIDE_FACING with splits")
					}
					if bhint {
						hintsplit = true
					}
					if beps {
						epsilonbrush++
					}

					test.testside = s
					// if the brush shares this face, don't bother testing
					// that face as a splitter again
					if s&PSIDE_FACING != 0 {
						facing++
						for ti := range test.Sides {
							if PlanesEqual(c.Planes.Get(test.Sides[ti].Plane), plane) {
								test.Sides[ti].tested = true
							}
						}
					}
					if s&PSIDE_FRONT != 0 {
						front++
					}
					if s&PSIDE_BACK != 0 {
						back++
					}
				}

				// give a value estimate for using this plane
				value := 5*facing - 5*splits - abs(front-back)
				if plane.Type < PLANE_ANYX {
					value += 5 // axial is better
				}
				value -= epsilonbrush * 1000 // avoid!

				// never split a hint side except with another hint
				if hintsplit && !c.TexInfos.Get(side.TexInfo).Hint {
					value = -9999999
				}

				// save off the side test so we don't need to recalculate
				// it when we actually separate the brushes
				if value > bestvalue {
					bestvalue = value
					bestside = side
					for _, test := range brushes {
						test.side = test.testside
					}
				}
			}
		}

		// if we found a good plane, don't bother trying other passes
		if bestside != nil {
			if pass > 0 {
				node.DetailSeparator = true // not needed for vis
			}
			break
		}
	}

	// clear all the tested flags we set
	for _, brush := range brushes {
		for si := range brush.Sides {
			brush.Sides[si].tested = false
		}
	}

	return bestside
}

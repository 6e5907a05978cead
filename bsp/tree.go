// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"qbsp/conlog"
	"qbsp/math/vec"
)

// Node is one cell of the tree: either an interior node with a splitting
// plane and two children, or a leaf carrying contents. Volume is the
// sub-region of space the node represents, itself stored as a brush.
type Node struct {
	Plane    Plane
	PlaneNum int
	Side     *Side

	Children [2]*Node
	Parent   *Node

	IsLeaf bool
	// splitter came from a chooser pass after the first (detail or
	// non-visible faces); not needed for vis
	DetailSeparator bool

	Contents        Contents
	OriginalBrushes []int

	Volume *Brush
	Bounds Bounds
}

func newNode(parent *Node) *Node {
	return &Node{PlaneNum: -1, Parent: parent}
}

// Tree owns the root node and the overall bounds of one build.
type Tree struct {
	ID       uuid.UUID
	HeadNode *Node
	Bounds   Bounds
}

// PointLeaf walks the tree down to the leaf containing p
func (t *Tree) PointLeaf(p vec.Vec3) *Node {
	node := t.HeadNode
	for !node.IsLeaf {
		d := node.Plane.DistAbove(p)
		if d > 0 {
			node = node.Children[0]
		} else {
			node = node.Children[1]
		}
	}
	return node
}

type bspStats struct {
	leafStats ContentStats
	// total number of nodes, includes nonvis
	nodes atomic.Int64
	// number of nodes created by splitting on a non-visible side
	nonvis atomic.Int64
	leafs  atomic.Int64
}

// leafNode classifies a leaf from the brushes that survived into the
// cell. Called in parallel.
func (c *Compiler) leafNode(leafnode *Node, brushes []*Brush, stats *bspStats) {
	leafnode.IsLeaf = true

	leafnode.Contents = c.game.CreateEmptyContents()
	for _, brush := range brushes {
		leafnode.Contents = c.game.CombineContents(leafnode.Contents, brush.Contents)
	}
	for _, brush := range brushes {
		leafnode.OriginalBrushes = append(leafnode.OriginalBrushes, brush.Original)
	}

	c.game.CountContentsInStats(leafnode.Contents, stats.leafStats)
}

// splitBrushList partitions the brushes by the classification stored
// during the splitter search
func (c *Compiler) splitBrushList(brushes []*Brush, node *Node) ([]*Brush, []*Brush) {
	var front, back []*Brush

	for _, brush := range brushes {
		sides := brush.side

		if sides == PSIDE_BOTH {
			// split into two brushes
			f, b := c.SplitBrush(brush.Copy(), node.Plane)
			if f != nil {
				front = append(front, f)
			}
			if b != nil {
				back = append(back, b)
			}
			continue
		}

		// if the plane is actually a part of the brush, find the side and
		// flag it as used so it won't be tried as a splitter again
		if sides&PSIDE_FACING != 0 {
			for si := range brush.Sides {
				if PlanesEqual(c.Planes.Get(brush.Sides[si].Plane), node.Plane) {
					brush.Sides[si].OnNode = true
				}
			}
		}

		if sides&PSIDE_FRONT != 0 {
			front = append(front, brush)
			continue
		}
		if sides&PSIDE_BACK != 0 {
			back = append(back, brush)
			continue
		}
	}

	return front, back
}

// buildTree subdivides the node until no splitter is left. The two child
// subtrees work on disjoint brush lists and disjoint volumes, so they run
// concurrently.
func (c *Compiler) buildTree(node *Node, brushes []*Brush, stats *bspStats) {
	// find the best plane to use as a splitter
	bestside := c.selectSplitSide(brushes, node)
	if bestside == nil {
		// this is a leaf node
		node.Side = nil
		stats.leafs.Add(1)
		c.leafNode(node, brushes, stats)
		return
	}

	// this is a splitplane node
	stats.nodes.Add(1)
	if !bestside.Visible {
		stats.nonvis.Add(1)
	}

	node.Side = bestside
	// always use the front facing plane
	num, _ := c.Planes.Intern(c.Planes.Get(bestside.Plane), true)
	node.PlaneNum = num
	node.Plane = c.Planes.Get(num)

	front, back := c.splitBrushList(brushes, node)

	// allocate children before recursing
	node.Children[0] = newNode(node)
	node.Children[1] = newNode(node)

	frontVolume, backVolume := c.SplitBrush(node.Volume.Copy(), node.Plane)
	node.Children[0].Volume = frontVolume
	node.Children[1].Volume = backVolume

	// recursively process children
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.buildTree(node.Children[0], front, stats)
	}()
	c.buildTree(node.Children[1], back, stats)
	wg.Wait()
}

// BrushBSP partitions the entity's brushes into a tree. The brushes are
// consumed: split brushes are replaced by their two pieces, unsplit
// brushes flow into the leaf lists unchanged.
func (c *Compiler) BrushBSP(entity *Entity) *Tree {
	tree := &Tree{ID: uuid.Must(uuid.NewV7())}

	conlog.Progressf("---- BrushBSP ----\n")
	conlog.DPrintf("build %s\n", tree.ID)

	cBrushes := 0
	cFaces := 0
	cNonvisFaces := 0
	tree.Bounds = EmptyBounds()
	for i, b := range entity.Brushes {
		b.Original = i
		cBrushes++

		if b.Volume(c.Planes) < c.opts.MicroVolume {
			conlog.Warningf("microbrush\n")
		}

		for si := range b.Sides {
			side := &b.Sides[si]
			if side.Bevel {
				continue
			}
			if len(side.Winding) == 0 {
				continue
			}
			if side.OnNode {
				continue
			}
			if side.Visible {
				cFaces++
			} else {
				cNonvisFaces++
			}
		}

		tree.Bounds.Union(b.Bounds)
	}

	if len(entity.Brushes) == 0 {
		// An entity can be constructed with no visible brushes (i.e. all
		// clip brushes), but downstream consumers still need a well
		// formed tree.
		headnode := newNode(nil)
		headnode.Bounds = entity.Bounds
		headnode.PlaneNum, _ = c.Planes.Intern(Plane{Normal: vec.Vec3{0, 0, 1}, Dist: 0}, true)
		headnode.Plane = c.Planes.Get(headnode.PlaneNum)
		for i := 0; i < 2; i++ {
			leaf := newNode(headnode)
			leaf.IsLeaf = true
			leaf.Contents = c.game.CreateEmptyContents()
			headnode.Children[i] = leaf
		}

		tree.Bounds = headnode.Bounds
		tree.HeadNode = headnode
		return tree
	}

	conlog.Statf("%8d brushes\n", cBrushes)
	conlog.Statf("%8d visible faces\n", cFaces)
	conlog.Statf("%8d nonvisible faces\n", cNonvisFaces)

	node := newNode(nil)
	node.Volume = BrushFromBounds(tree.Bounds.Grow(c.opts.SideSpace), c.Planes, c.opts.WorldExtent)
	tree.HeadNode = node

	stats := &bspStats{leafStats: c.game.CreateContentStats()}
	c.buildTree(tree.HeadNode, entity.Brushes, stats)

	conlog.Statf("%8d visible nodes\n", stats.nodes.Load()-stats.nonvis.Load())
	conlog.Statf("%8d nonvis nodes\n", stats.nonvis.Load())
	conlog.Statf("%8d leafs\n", stats.leafs.Load())
	c.game.PrintContentStats(stats.leafStats, "leafs")

	return tree
}

// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"
)

// Compiler carries the shared read-only state of one build: the options,
// the game adapter, the plane registry, and the texinfo records. All of
// it is safe to share across the build tasks.
type Compiler struct {
	opts Options
	game Game

	Planes   *PlaneSet
	TexInfos *TexInfoStore
}

func NewCompiler(opts Options, game Game) *Compiler {
	return &Compiler{
		opts:     opts,
		game:     game,
		Planes:   NewPlaneSet(),
		TexInfos: NewTexInfoStore(),
	}
}

func (c *Compiler) Options() Options {
	return c.opts
}

// Entity is the input of one build: uniquely-owned brushes plus the
// entity-level bounding box.
type Entity struct {
	Bounds  Bounds
	Brushes []*Brush
}

// Validate checks the brushes are well formed before a build
func (e *Entity) Validate(c *Compiler) error {
	for i, b := range e.Brushes {
		if len(b.Sides) < 4 {
			return errors.Errorf("brush %d has only %d sides", i, len(b.Sides))
		}
		for j := range b.Sides {
			w := b.Sides[j].Winding
			if w == nil {
				continue
			}
			if err := w.Check(c.opts.WorldExtent); err != nil {
				return errors.Wrapf(err, "brush %d side %d", i, j)
			}
		}
	}
	return nil
}

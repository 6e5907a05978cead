// SPDX-License-Identifier: GPL-2.0-or-later

// Quake-style game adapter: contents are a bit-mask combined by OR, with
// a detail bit that keeps a brush out of the visibility-structural
// chooser passes.
package qgame

import (
	"sync/atomic"

	"qbsp/bsp"
	"qbsp/conlog"
)

const (
	CONTENTS_SOLID bsp.Contents = 1 << iota
	CONTENTS_WATER
	CONTENTS_SLIME
	CONTENTS_LAVA
	CONTENTS_SKY
	CONTENTS_CLIP
	CONTENTS_ORIGIN
	CONTENTS_DETAIL
)

const CONTENTS_EMPTY bsp.Contents = 0

// ContentStats counts leafs per content class. Leaves are classified in
// parallel, so the counters are atomic.
type ContentStats struct {
	Empty atomic.Int64
	Solid atomic.Int64
	Water atomic.Int64
	Slime atomic.Int64
	Lava  atomic.Int64
	Sky   atomic.Int64
	Clip  atomic.Int64
}

type Game struct{}

func (Game) CreateEmptyContents() bsp.Contents {
	return CONTENTS_EMPTY
}

func (Game) CombineContents(a, b bsp.Contents) bsp.Contents {
	return a | b
}

func (Game) IsAnyDetail(c bsp.Contents) bool {
	return c&CONTENTS_DETAIL != 0
}

func (Game) CreateContentStats() bsp.ContentStats {
	return &ContentStats{}
}

func (Game) CountContentsInStats(c bsp.Contents, stats bsp.ContentStats) {
	s := stats.(*ContentStats)
	if c == CONTENTS_EMPTY {
		s.Empty.Add(1)
		return
	}
	if c&CONTENTS_SOLID != 0 {
		s.Solid.Add(1)
	}
	if c&CONTENTS_WATER != 0 {
		s.Water.Add(1)
	}
	if c&CONTENTS_SLIME != 0 {
		s.Slime.Add(1)
	}
	if c&CONTENTS_LAVA != 0 {
		s.Lava.Add(1)
	}
	if c&CONTENTS_SKY != 0 {
		s.Sky.Add(1)
	}
	if c&CONTENTS_CLIP != 0 {
		s.Clip.Add(1)
	}
}

func (Game) PrintContentStats(stats bsp.ContentStats, label string) {
	s := stats.(*ContentStats)
	print := func(n int64, class string) {
		if n == 0 {
			return
		}
		conlog.Statf("%8d %s %s\n", n, class, label)
	}
	print(s.Empty.Load(), "empty")
	print(s.Solid.Load(), "solid")
	print(s.Water.Load(), "water")
	print(s.Slime.Load(), "slime")
	print(s.Lava.Load(), "lava")
	print(s.Sky.Load(), "sky")
	print(s.Clip.Load(), "clip")
}

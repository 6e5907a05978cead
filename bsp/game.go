// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Contents is an opaque bit-mask; only the game adapter gives it meaning.
type Contents uint32

// ContentStats is the game adapter's own leaf accounting. Implementations
// must be safe for concurrent counting, leaves are classified in parallel.
type ContentStats interface{}

// Game is the pluggable adapter that interprets brush contents for the
// core.
type Game interface {
	CreateEmptyContents() Contents
	CombineContents(a, b Contents) Contents
	IsAnyDetail(c Contents) bool
	CreateContentStats() ContentStats
	CountContentsInStats(c Contents, stats ContentStats)
	PrintContentStats(stats ContentStats, label string)
}

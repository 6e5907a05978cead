package bsp

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"qbsp/conlog"
	"qbsp/math/vec"
)

// minimal game adapter for the core tests: contents are OR'ed bits, the
// top bit marks detail
const (
	testSolid  Contents = 1
	testWater  Contents = 2
	testDetail Contents = 1 << 31
)

type testStats struct {
	leafs atomic.Int64
}

type testGame struct{}

func (testGame) CreateEmptyContents() Contents          { return 0 }
func (testGame) CombineContents(a, b Contents) Contents { return a | b }
func (testGame) IsAnyDetail(c Contents) bool            { return c&testDetail != 0 }
func (testGame) CreateContentStats() ContentStats       { return &testStats{} }
func (testGame) CountContentsInStats(c Contents, stats ContentStats) {
	stats.(*testStats).leafs.Add(1)
}
func (testGame) PrintContentStats(stats ContentStats, label string) {}

func newTestCompiler() *Compiler {
	return NewCompiler(DefaultOptions(), testGame{})
}

// solidCube builds an axial brush with visible faces
func solidCube(c *Compiler, mins, maxs vec.Vec3, contents Contents) *Brush {
	b := BrushFromBounds(MakeBounds(mins, maxs), c.Planes, c.opts.WorldExtent)
	b.Contents = contents
	for i := range b.Sides {
		b.Sides[i].Visible = true
	}
	return b
}

// captureLog redirects conlog output for the test and returns a getter
// for everything printed so far
func captureLog(t *testing.T) func() string {
	t.Helper()
	var mu sync.Mutex
	var sb strings.Builder
	conlog.SetPrintf(func(format string, v ...interface{}) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(&sb, format, v...)
	})
	t.Cleanup(func() { conlog.SetPrintf(nil) })
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return sb.String()
	}
}

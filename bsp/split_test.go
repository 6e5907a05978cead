package bsp

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"qbsp/math/vec"
)

func TestSplitBrushVolumeConservation(t *testing.T) {
	c := newTestCompiler()

	planes := []struct {
		name   string
		normal vec.Vec3
		dist   float32
	}{
		{"axial", vec.Vec3{1, 0, 0}, 5},
		{"axial mid", vec.Vec3{0, 0, 1}, 8},
		{"diagonal", func() vec.Vec3 { n := vec.Vec3{1, 1, 0}; return n.Normalize() }(), 11},
	}

	for _, tc := range planes {
		b := solidCube(c, vec.Vec3{0, 0, 0}, vec.Vec3{16, 16, 16}, testSolid)
		total := b.Volume(c.Planes)
		plane, _ := FromPlane(tc.normal, tc.dist, true)

		front, back := c.SplitBrush(b, plane)
		if front == nil || back == nil {
			t.Fatalf("%s: split produced front=%v back=%v", tc.name, front, back)
		}
		sum := front.Volume(c.Planes) + back.Volume(c.Planes)
		if !scalar.EqualWithinAbs(float64(sum), float64(total), 1e-3*float64(total)) {
			t.Errorf("%s: volume %v + %v != %v", tc.name, front.Volume(c.Planes), back.Volume(c.Planes), total)
		}
		checkBrushConvex(t, c, front)
		checkBrushConvex(t, c, back)
	}
}

// the cap side on the front child faces -plane, on the back child +plane
func TestSplitBrushCapOrientation(t *testing.T) {
	c := newTestCompiler()
	b := solidCube(c, vec.Vec3{0, 0, 0}, vec.Vec3{16, 16, 16}, testSolid)
	plane, _ := FromPlane(vec.Vec3{1, 0, 0}, 5, true)

	front, back := c.SplitBrush(b, plane)
	if front == nil || back == nil {
		t.Fatalf("split failed")
	}

	findCap := func(b *Brush) *Side {
		for i := range b.Sides {
			s := &b.Sides[i]
			if s.OnNode && s.TexInfo == c.TexInfos.Skip {
				return s
			}
		}
		return nil
	}

	fcap := findCap(front)
	bcap := findCap(back)
	if fcap == nil || bcap == nil {
		t.Fatalf("missing cap side")
	}
	if fcap.Visible || bcap.Visible {
		t.Errorf("cap sides must not be visible")
	}
	if !PlanesEqual(fcap.FacePlane(c.Planes), plane.Neg()) {
		t.Errorf("front cap plane = %+v", fcap.FacePlane(c.Planes))
	}
	if !PlanesEqual(bcap.FacePlane(c.Planes), plane) {
		t.Errorf("back cap plane = %+v", bcap.FacePlane(c.Planes))
	}
}

func TestSplitBrushMetadataSurvives(t *testing.T) {
	c := newTestCompiler()
	b := solidCube(c, vec.Vec3{0, 0, 0}, vec.Vec3{16, 16, 16}, testSolid|testWater)
	b.Original = 7
	b.LMShift = 2
	b.FuncAreaportal = true
	plane, _ := FromPlane(vec.Vec3{0, 1, 0}, 8, true)

	front, back := c.SplitBrush(b, plane)
	for _, piece := range []*Brush{front, back} {
		if piece == nil {
			t.Fatalf("split failed")
		}
		if piece.Original != 7 || piece.Contents != testSolid|testWater ||
			piece.LMShift != 2 || !piece.FuncAreaportal {
			t.Errorf("piece lost metadata: %+v", piece)
		}
	}
}

func TestSplitBrushWhollyOnOneSide(t *testing.T) {
	c := newTestCompiler()
	b := solidCube(c, vec.Vec3{0, 0, 0}, vec.Vec3{16, 16, 16}, testSolid)

	plane, _ := FromPlane(vec.Vec3{1, 0, 0}, 20, true)
	front, back := c.SplitBrush(b, plane)
	if front != nil || back != b {
		t.Errorf("brush behind the plane: front=%v back=%v", front, back)
	}

	plane, _ = FromPlane(vec.Vec3{1, 0, 0}, -4, true)
	front, back = c.SplitBrush(b, plane)
	if front != b || back != nil {
		t.Errorf("brush in front of the plane: front=%v back=%v", front, back)
	}

	// barely poking past the plane slides by without chopping
	plane, _ = FromPlane(vec.Vec3{1, 0, 0}, 15.95, true)
	front, back = c.SplitBrush(b, plane)
	if front != nil || back != b {
		t.Errorf("barely poking brush was chopped: front=%v back=%v", front, back)
	}
}

func TestSplitBrushTinyPieceKeepsOriginal(t *testing.T) {
	getLog := captureLog(t)
	c := newTestCompiler()
	// long thin brush: a cut near the end leaves a piece below the
	// minimum volume
	b := solidCube(c, vec.Vec3{0, 0, 0}, vec.Vec3{16, 1, 1}, testSolid)
	plane, _ := FromPlane(vec.Vec3{1, 0, 0}, 0.5, true)

	front, back := c.SplitBrush(b, plane)
	if back != nil {
		t.Errorf("tiny back piece survived: %+v", back)
	}
	if front != b {
		t.Errorf("original brush not returned on the surviving side")
	}
	if !strings.Contains(getLog(), "split not on both sides") {
		t.Errorf("missing diagnostic, log: %q", getLog())
	}
}

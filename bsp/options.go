// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Options is read-only after configuration and freely shared between the
// build tasks.
type Options struct {
	// half extent of the world; base windings are sized from it and
	// anything poking past it is reported huge
	WorldExtent float32
	// brushes below this volume get the microbrush warning
	MicroVolume float32
	// growth applied to the union of the brush bounds to form the root
	// volume
	SideSpace float32
}

func DefaultOptions() Options {
	return Options{
		WorldExtent: 65536,
		MicroVolume: 1.0,
		SideSpace:   8,
	}
}

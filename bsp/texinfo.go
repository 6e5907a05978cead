// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// TexInfo is opaque to the core except for the two splitter-selection
// flags: Hint biases the chooser toward the face, HintSkip excludes the
// face from split counting and from ever being chosen.
type TexInfo struct {
	Name     string
	Hint     bool
	HintSkip bool
}

// TexInfoStore holds the texinfo records of a build. Read-only once the
// brushes are ingested. Index 0 is a plain default so the zero Side is
// a valid untextured face; Skip is the distinguished texinfo stamped on
// the cap sides a split introduces.
type TexInfoStore struct {
	infos []TexInfo
	Skip  int
}

func NewTexInfoStore() *TexInfoStore {
	s := &TexInfoStore{}
	s.Add(TexInfo{Name: "default"})
	s.Skip = s.Add(TexInfo{Name: "skip", HintSkip: true})
	return s
}

func (s *TexInfoStore) Add(ti TexInfo) int {
	s.infos = append(s.infos, ti)
	return len(s.infos) - 1
}

func (s *TexInfoStore) Get(i int) TexInfo {
	return s.infos[i]
}

// psg_shadow.go - Shadow copy of the raw bytes last written to each
// register, the editing surface behind the jam and frame views.
//
// Unlike the project-load path, Update is strict about register names: the
// shadow state only ever receives writes from in-process tooling, so an
// unknown key there is a programming error worth surfacing.

package main

import "fmt"

type ShadowState struct {
	regs RegisterFile
}

func NewShadowState() *ShadowState {
	s := &ShadowState{}
	s.regs[REG_MIXER] = MIXER_ALL_OFF
	return s
}

// Update records a byte write to a named register, clamping the value to
// 0-255 the way a hardware byte write would truncate it.
func (s *ShadowState) Update(name string, value int) error {
	idx, ok := registerIndex[name]
	if !ok {
		return fmt.Errorf("unknown register %s", name)
	}
	s.regs[idx] = uint8(clampInt(value, 0, 255))
	return nil
}

// Registers returns a copy of the current register file.
func (s *ShadowState) Registers() RegisterFile {
	return s.regs
}

// Wire returns the string-keyed form for persistence and export.
func (s *ShadowState) Wire() map[string]int {
	return s.regs.ToWire()
}

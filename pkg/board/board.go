// Package board models the capabilities of a transmitter hardware variant:
// which sticks, pots, sliders, switches and trims it has, and the tags under
// which each is persisted.
package board

import (
	"fmt"
	"strings"

	"github.com/example/radio-source-codec/pkg/lookup"
)

// DefaultTrainerInputs applies when a definition does not set trainerInputs.
const DefaultTrainerInputs = 16

var (
	specialTypes = lookup.MustNew(
		lookup.Entry{Index: 0, Tag: "TxBatt", Name: "Batt"},
		lookup.Entry{Index: 1, Tag: "TxTime", Name: "Time"},
		lookup.Entry{Index: 2, Tag: "TxGPS", Name: "GPS"},
		lookup.Entry{Index: 3, Tag: "Tmr1", Name: "Timer1"},
		lookup.Entry{Index: 4, Tag: "Tmr2", Name: "Timer2"},
		lookup.Entry{Index: 5, Tag: "Tmr3", Name: "Timer3"},
	)

	cyclicSources = lookup.MustNew(
		lookup.Entry{Index: 0, Tag: "CYC1"},
		lookup.Entry{Index: 1, Tag: "CYC2"},
		lookup.Entry{Index: 2, Tag: "CYC3"},
	)

	// trim spellings written before the analog refactor, by TrimAxis
	legacyTrimSources = lookup.MustNew(
		lookup.Entry{Index: int(TrimAxisLH), Tag: "TrimR"},
		lookup.Entry{Index: int(TrimAxisLV), Tag: "TrimE"},
		lookup.Entry{Index: int(TrimAxisRV), Tag: "TrimT"},
		lookup.Entry{Index: int(TrimAxisRH), Tag: "TrimA"},
		lookup.Entry{Index: int(TrimAxisT5), Tag: "Trim5"},
		lookup.Entry{Index: int(TrimAxisT6), Tag: "Trim6"},
		lookup.Entry{Index: int(TrimAxisT7), Tag: "Trim7"},
		lookup.Entry{Index: int(TrimAxisT8), Tag: "Trim8"},
	)
)

// Board is an immutable capability snapshot of one hardware variant. All
// methods are safe for concurrent use.
type Board struct {
	name        string
	displayName string

	inputs   []InputInfo
	switches []SwitchInfo

	inputTable  *lookup.Table // tag + name
	inputRefs   *lookup.Table // persisted spelling
	switchTable *lookup.Table
	trimTable   *lookup.Table

	legacyAnalogs map[string]string
	caps          map[Capability]int
}

// New validates def and builds a Board from it.
func New(def *Definition) (*Board, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		name:          def.Name,
		displayName:   def.DisplayName,
		inputs:        make([]InputInfo, 0, len(def.Inputs)),
		switches:      make([]SwitchInfo, 0, len(def.Switches)),
		legacyAnalogs: make(map[string]string, len(def.LegacyAnalogs)),
		caps:          make(map[Capability]int),
	}
	if b.displayName == "" {
		b.displayName = def.Name
	}

	inputEntries := make([]lookup.Entry, 0, len(def.Inputs))
	refEntries := make([]lookup.Entry, 0, len(def.Inputs))
	for i, in := range def.Inputs {
		// enum spellings were checked by Validate
		typ, _ := ParseAnalogInputType(in.Type)
		flex, _ := ParseFlexType(in.FlexType)
		info := InputInfo{
			Type:      typ,
			Tag:       in.Tag,
			Name:      in.Name,
			ShortName: in.ShortName,
			FlexType:  flex,
			Inverted:  in.Inverted,
		}
		b.inputs = append(b.inputs, info)
		inputEntries = append(inputEntries, lookup.Entry{Index: i, Tag: in.Tag, Name: in.Name})
		refEntries = append(refEntries, lookup.Entry{Index: i, Tag: inputRef(info)})

		switch typ {
		case InputStick:
			b.caps[Sticks]++
		case InputFlex:
			b.caps[FlexInputs]++
			switch flex {
			case FlexSlider:
				b.caps[Sliders]++
			case FlexMultipos:
				b.caps[MultiposPots]++
				b.caps[Pots]++
			case FlexPot, FlexPotCenter:
				b.caps[Pots]++
			}
		}
	}

	switchEntries := make([]lookup.Entry, 0, len(def.Switches))
	for i, sw := range def.Switches {
		typ, _ := ParseSwitchType(sw.Type)
		info := SwitchInfo{Type: typ, Tag: sw.Tag, Name: sw.Name, Inverted: sw.Inverted}
		if info.Name == "" {
			info.Name = sw.Tag
		}
		b.switches = append(b.switches, info)
		switchEntries = append(switchEntries, lookup.Entry{Index: i, Tag: sw.Tag, Name: info.Name})

		switch {
		case strings.HasPrefix(sw.Tag, "SW"):
			b.caps[FunctionSwitches]++
		case strings.HasPrefix(sw.Tag, "FL"):
			b.caps[FlexSwitches]++
		default:
			b.caps[StandardSwitches]++
		}
	}

	trimEntries := make([]lookup.Entry, 0, len(def.Trims))
	for i, trim := range def.Trims {
		trimEntries = append(trimEntries, lookup.Entry{Index: i, Tag: trim.Tag, Name: trim.Name})
	}

	var err error
	if b.inputTable, err = lookup.New(inputEntries...); err != nil {
		return nil, fmt.Errorf("%w: %s inputs: %v", ErrInvalidDefinition, def.Name, err)
	}
	if b.inputRefs, err = lookup.New(refEntries...); err != nil {
		return nil, fmt.Errorf("%w: %s input references: %v", ErrInvalidDefinition, def.Name, err)
	}
	if b.switchTable, err = lookup.New(switchEntries...); err != nil {
		return nil, fmt.Errorf("%w: %s switches: %v", ErrInvalidDefinition, def.Name, err)
	}
	if b.trimTable, err = lookup.New(trimEntries...); err != nil {
		return nil, fmt.Errorf("%w: %s trims: %v", ErrInvalidDefinition, def.Name, err)
	}

	for legacy, current := range def.LegacyAnalogs {
		b.legacyAnalogs[legacy] = current
	}

	trainer := DefaultTrainerInputs
	if def.TrainerInputs != nil {
		trainer = *def.TrainerInputs
	}
	b.caps[TrainerInputs] = trainer
	b.caps[Inputs] = len(b.inputs)
	b.caps[Switches] = len(b.switches)
	b.caps[SwitchesPositions] = len(b.switches) * 3
	b.caps[NumFunctionSwitchesPositions] = b.caps[FunctionSwitches] * 3
	b.caps[MultiposPotsPositions] = b.caps[MultiposPots] * MultiposPositions
	b.caps[NumTrims] = len(def.Trims)
	b.caps[NumTrimSwitches] = len(def.Trims) * 2
	if def.HasTrainerCPPM {
		b.caps[HasTrainerModuleCPPM] = 1
	}
	if def.HasTrainerSBUS {
		b.caps[HasTrainerModuleSBUS] = 1
	}

	return b, nil
}

// sticks persist under their name, every other input under its tag
func inputRef(info InputInfo) string {
	if info.Type == InputStick {
		return info.Name
	}
	return info.Tag
}

// Name returns the short board identifier.
func (b *Board) Name() string { return b.name }

// DisplayName returns the product name.
func (b *Board) DisplayName() string { return b.displayName }

// Capability returns the count (or 0/1 flag) for c. Absent categories are 0.
func (b *Board) Capability(c Capability) int {
	return b.caps[c]
}

// InputInfo returns the input at index, or the zero InputInfo when out of range.
func (b *Board) InputInfo(index int) InputInfo {
	if index < 0 || index >= len(b.inputs) {
		return InputInfo{}
	}
	return b.inputs[index]
}

// InputIndex finds an input by tag or name; -1 when absent.
func (b *Board) InputIndex(val string, lvt LookupValueType) int {
	idx, ok := b.inputTable.IndexOf(val, lvt)
	if !ok {
		return -1
	}
	return idx
}

// InputTag returns the hardware tag of the input at index.
func (b *Board) InputTag(index int) string { return b.InputInfo(index).Tag }

// InputName returns the display name of the input at index.
func (b *Board) InputName(index int) string { return b.InputInfo(index).Name }

// IsInputStick reports whether the input at index is a stick.
func (b *Board) IsInputStick(index int) bool { return b.InputInfo(index).Type == InputStick }

// IsInputPot reports whether the input at index is a pot or multi-position pot.
func (b *Board) IsInputPot(index int) bool {
	info := b.InputInfo(index)
	if info.Type != InputFlex {
		return false
	}
	switch info.FlexType {
	case FlexPot, FlexPotCenter, FlexMultipos:
		return true
	}
	return false
}

// InputYAMLName returns the persisted spelling of the input at index.
func (b *Board) InputYAMLName(index int) string {
	s, _ := b.inputRefs.TextOf(index, lookup.ByTag)
	return s
}

// InputYAMLIndex resolves a persisted input spelling; -1 when absent.
func (b *Board) InputYAMLIndex(s string) int {
	idx, ok := b.inputRefs.IndexOf(s, lookup.ByTag)
	if !ok {
		return -1
	}
	return idx
}

// SwitchInfo returns the switch at index, or the zero SwitchInfo when out of range.
func (b *Board) SwitchInfo(index int) SwitchInfo {
	if index < 0 || index >= len(b.switches) {
		return SwitchInfo{}
	}
	return b.switches[index]
}

// SwitchIndex finds a switch by tag or name; -1 when absent.
func (b *Board) SwitchIndex(val string, lvt LookupValueType) int {
	idx, ok := b.switchTable.IndexOf(val, lvt)
	if !ok {
		return -1
	}
	return idx
}

// SwitchYAMLName returns the persisted spelling of the switch at index.
func (b *Board) SwitchYAMLName(index int) string {
	s, _ := b.switchTable.TextOf(index, lookup.ByTag)
	return s
}

// SwitchYAMLIndex resolves a persisted switch spelling; -1 when absent.
func (b *Board) SwitchYAMLIndex(s string) int {
	return b.SwitchIndex(s, LVTTag)
}

// IsSwitchFunc reports whether the switch at index is a function switch.
func (b *Board) IsSwitchFunc(index int) bool {
	return b.SwitchInfo(index).Type == SwitchFunc
}

// IsSwitchFlex reports whether the switch at index is a flex switch (FLn).
func (b *Board) IsSwitchFlex(index int) bool {
	return strings.HasPrefix(b.SwitchInfo(index).Tag, "FL")
}

// TrimYAMLName returns the persisted spelling of the trim at index.
func (b *Board) TrimYAMLName(index int) string {
	s, _ := b.trimTable.TextOf(index, lookup.ByTag)
	return s
}

// TrimYAMLIndex resolves a persisted trim spelling; -1 when absent.
func (b *Board) TrimYAMLIndex(s string) int {
	idx, ok := b.trimTable.IndexOf(s, lookup.ByTag)
	if !ok {
		return -1
	}
	return idx
}

// LegacyAnalogTag maps a pre-refactor analog tag to the current tag. Tags
// without a mapping are returned unchanged.
func (b *Board) LegacyAnalogTag(tag string) string {
	if current, ok := b.legacyAnalogs[tag]; ok {
		return current
	}
	return tag
}

// LegacyTrimSourceIndex resolves a pre-refactor trim spelling to a trim
// index on this board; -1 when absent or beyond the board's trims.
func (b *Board) LegacyTrimSourceIndex(s string) int {
	idx, ok := legacyTrimSources.IndexOf(s, lookup.ByTag)
	if !ok || idx >= b.Capability(NumTrims) {
		return -1
	}
	return idx
}

// SpecialTypeTag returns the persisted spelling of a special source.
func (b *Board) SpecialTypeTag(index int) string {
	s, _ := specialTypes.TextOf(index, lookup.ByTag)
	return s
}

// SpecialTypeIndex resolves a special-source spelling; -1 when absent.
func (b *Board) SpecialTypeIndex(s string) int {
	idx, ok := specialTypes.IndexOf(s, lookup.ByTag)
	if !ok {
		return -1
	}
	return idx
}

// CyclicTag returns the persisted spelling of a cyclic source.
func (b *Board) CyclicTag(index int) string {
	s, _ := cyclicSources.TextOf(index, lookup.ByTag)
	return s
}

// CyclicIndex resolves a cyclic-source spelling; -1 when absent.
func (b *Board) CyclicIndex(s string) int {
	idx, ok := cyclicSources.IndexOf(s, lookup.ByTag)
	if !ok {
		return -1
	}
	return idx
}

// Inputs returns a copy of all input infos in index order.
func (b *Board) Inputs() []InputInfo {
	out := make([]InputInfo, len(b.inputs))
	copy(out, b.inputs)
	return out
}

// Switches returns a copy of all switch infos in index order.
func (b *Board) Switches() []SwitchInfo {
	out := make([]SwitchInfo, len(b.switches))
	copy(out, b.switches)
	return out
}

// String returns a one-line summary of the board.
func (b *Board) String() string {
	return fmt.Sprintf("Board %s (%s, sticks: %d, pots: %d, sliders: %d, switches: %d, trims: %d)",
		b.name, b.displayName, b.caps[Sticks], b.caps[Pots], b.caps[Sliders], b.caps[Switches], b.caps[NumTrims])
}

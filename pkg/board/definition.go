package board

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/example/radio-source-codec/pkg/lookup"
)

// ErrInvalidDefinition wraps every board-definition validation failure.
var ErrInvalidDefinition = errors.New("invalid board definition")

// Definition is the on-disk description of a board. It is the only input the
// capability model needs; a Board is built from it once and never mutated.
type Definition struct {
	// Name is the short, unique board identifier used on the command line and
	// in configuration (e.g. "tx16s").
	Name string `yaml:"name"`

	// DisplayName is the human-readable product name
	DisplayName string `yaml:"displayName,omitempty"`

	// TrainerInputs is the number of trainer (PPM) channels the board accepts.
	// If omitted, 16 is assumed.
	TrainerInputs *int `yaml:"trainerInputs,omitempty"`

	// HasTrainerCPPM and HasTrainerSBUS flag trainer-module support.
	HasTrainerCPPM bool `yaml:"hasTrainerCPPM,omitempty"`
	HasTrainerSBUS bool `yaml:"hasTrainerSBUS,omitempty"`

	// Inputs lists the analog inputs in hardware order. The position of an entry
	// is its input index. Sticks must precede flex inputs.
	Inputs []InputDefinition `yaml:"inputs"`

	// Switches lists the switches in hardware order: standard switches first,
	// then function switches (SWn), then flex switches (FLn).
	Switches []SwitchDefinition `yaml:"switches,omitempty"`

	// Trims lists the trims in axis order (see TrimAxis).
	Trims []TrimDefinition `yaml:"trims,omitempty"`

	// LegacyAnalogs maps tags written before the analog refactor to current input tags.
	LegacyAnalogs map[string]string `yaml:"legacyAnalogs,omitempty"`
}

// InputDefinition describes one analog input.
type InputDefinition struct {
	Tag       string `yaml:"tag"`
	Name      string `yaml:"name,omitempty"`
	ShortName string `yaml:"shortName,omitempty"`
	// Type is one of STICK, FLEX, VBAT, RTC_BAT, SWITCH
	Type string `yaml:"type"`
	// FlexType is the default role of a FLEX input (POT, POT_CENTER, SLIDER, MULTIPOS, ...)
	FlexType string `yaml:"flexType,omitempty"`
	Inverted bool   `yaml:"inverted,omitempty"`
}

// SwitchDefinition describes one switch.
type SwitchDefinition struct {
	Tag  string `yaml:"tag"`
	Name string `yaml:"name,omitempty"`
	// Type is one of TOGGLE, 2POS, 3POS, FUNC
	Type     string `yaml:"type"`
	Inverted bool   `yaml:"inverted,omitempty"`
}

// TrimDefinition describes one trim. Tag is the persisted spelling (e.g. "TrmT").
type TrimDefinition struct {
	Tag  string `yaml:"tag"`
	Name string `yaml:"name,omitempty"`
}

var (
	boardNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	inputTagPattern  = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	switchTagPattern = regexp.MustCompile(`^(S[A-Z]|SW[1-9]|FL[1-9])$`)

	// virtual inputs are persisted as I<n>
	virtualInputPattern = regexp.MustCompile(`^I[0-9]`)

	reservedTokens = []string{"NONE", "MIN", "MAX"}
)

const spacemousePrefix = "SPACEMOUSE_"

// ValidateName checks a board name: lower-case alphanumeric, '-' or '_'.
func ValidateName(name string) error {
	if !boardNamePattern.MatchString(name) {
		return fmt.Errorf("board name %q must be lower-case alphanumeric", name)
	}
	return nil
}

// ValidateSwitchTag checks the persisted switch shapes S<letter>, SW<digit> and FL<digit>.
func ValidateSwitchTag(tag string) error {
	if !switchTagPattern.MatchString(tag) {
		return fmt.Errorf("switch tag %q must be S<letter>, SW<digit> or FL<digit>", tag)
	}
	return nil
}

// checkReference rejects a persisted input or trim spelling that a fixed
// token, another source category or an earlier decode step already claims.
func checkReference(ref string) error {
	switch {
	case !inputTagPattern.MatchString(ref):
		return fmt.Errorf("%q is not a valid persisted spelling", ref)
	case slices.Contains(reservedTokens, ref):
		return fmt.Errorf("%q is a reserved token", ref)
	case virtualInputPattern.MatchString(ref):
		return fmt.Errorf("%q is spelled like a virtual input", ref)
	case switchTagPattern.MatchString(ref):
		return fmt.Errorf("%q is spelled like a switch", ref)
	case strings.HasPrefix(ref, spacemousePrefix):
		return fmt.Errorf("%q is spelled like a spacemouse axis", ref)
	}
	if _, ok := specialTypes.IndexOf(ref, lookup.ByTag); ok {
		return fmt.Errorf("%q is a special source", ref)
	}
	if _, ok := cyclicSources.IndexOf(ref, lookup.ByTag); ok {
		return fmt.Errorf("%q is a cyclic source", ref)
	}
	return nil
}

// Validate performs structural validation of the definition
func (d *Definition) Validate() error {
	if err := ValidateName(d.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if d.TrainerInputs != nil && *d.TrainerInputs < 0 {
		return fmt.Errorf("%w: %s: trainerInputs must not be negative", ErrInvalidDefinition, d.Name)
	}

	seen := make(map[string]bool)
	seenFlex := false
	for i, in := range d.Inputs {
		if !inputTagPattern.MatchString(in.Tag) {
			return fmt.Errorf("%w: %s: input %d has invalid tag %q", ErrInvalidDefinition, d.Name, i, in.Tag)
		}
		if seen[in.Tag] {
			return fmt.Errorf("%w: %s: duplicate input tag %s", ErrInvalidDefinition, d.Name, in.Tag)
		}
		seen[in.Tag] = true

		typ, err := ParseAnalogInputType(in.Type)
		if err != nil {
			return fmt.Errorf("%w: %s: input %s: %v", ErrInvalidDefinition, d.Name, in.Tag, err)
		}
		if _, err := ParseFlexType(in.FlexType); err != nil {
			return fmt.Errorf("%w: %s: input %s: %v", ErrInvalidDefinition, d.Name, in.Tag, err)
		}
		switch typ {
		case InputStick:
			if in.Name == "" {
				return fmt.Errorf("%w: %s: stick %s needs a name", ErrInvalidDefinition, d.Name, in.Tag)
			}
			if seenFlex {
				return fmt.Errorf("%w: %s: stick %s listed after flex inputs", ErrInvalidDefinition, d.Name, in.Tag)
			}
		case InputFlex:
			seenFlex = true
		}
	}

	// persisted spellings: stick names, other input tags, then trim tags
	refs := make(map[string]bool)
	for _, in := range d.Inputs {
		ref := in.Tag
		if typ, _ := ParseAnalogInputType(in.Type); typ == InputStick {
			ref = in.Name
		}
		if err := checkReference(ref); err != nil {
			return fmt.Errorf("%w: %s: input %s: %v", ErrInvalidDefinition, d.Name, in.Tag, err)
		}
		if refs[ref] {
			return fmt.Errorf("%w: %s: input %s: %q is persisted by another input", ErrInvalidDefinition, d.Name, in.Tag, ref)
		}
		refs[ref] = true
	}

	seen = make(map[string]bool)
	for _, sw := range d.Switches {
		if err := ValidateSwitchTag(sw.Tag); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.Name, err)
		}
		if seen[sw.Tag] {
			return fmt.Errorf("%w: %s: duplicate switch tag %s", ErrInvalidDefinition, d.Name, sw.Tag)
		}
		seen[sw.Tag] = true
		if _, err := ParseSwitchType(sw.Type); err != nil {
			return fmt.Errorf("%w: %s: switch %s: %v", ErrInvalidDefinition, d.Name, sw.Tag, err)
		}
	}

	if len(d.Trims) > int(TrimAxisCount) {
		return fmt.Errorf("%w: %s: %d trims, at most %d supported", ErrInvalidDefinition, d.Name, len(d.Trims), TrimAxisCount)
	}
	seen = make(map[string]bool)
	for i, trim := range d.Trims {
		if !inputTagPattern.MatchString(trim.Tag) {
			return fmt.Errorf("%w: %s: trim %d has invalid tag %q", ErrInvalidDefinition, d.Name, i, trim.Tag)
		}
		if seen[trim.Tag] {
			return fmt.Errorf("%w: %s: duplicate trim tag %s", ErrInvalidDefinition, d.Name, trim.Tag)
		}
		seen[trim.Tag] = true
		if err := checkReference(trim.Tag); err != nil {
			return fmt.Errorf("%w: %s: trim %d: %v", ErrInvalidDefinition, d.Name, i, err)
		}
		if refs[trim.Tag] {
			return fmt.Errorf("%w: %s: trim %s is also an input spelling", ErrInvalidDefinition, d.Name, trim.Tag)
		}
	}

	for legacy, current := range d.LegacyAnalogs {
		found := false
		for _, in := range d.Inputs {
			if in.Tag == current {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s: legacy analog %s maps to unknown input %s", ErrInvalidDefinition, d.Name, legacy, current)
		}
	}

	return nil
}

// String returns a human-readable summary of the definition.
func (d *Definition) String() string {
	var sb strings.Builder
	name := d.DisplayName
	if name == "" {
		name = d.Name
	}
	sb.WriteString(fmt.Sprintf("Board %s (%s)\n", d.Name, name))
	sb.WriteString(fmt.Sprintf("  Inputs: %d\n", len(d.Inputs)))
	sb.WriteString(fmt.Sprintf("  Switches: %d\n", len(d.Switches)))
	sb.WriteString(fmt.Sprintf("  Trims: %d\n", len(d.Trims)))
	return sb.String()
}

// Package formatver handles the semantic version recorded in a persisted
// configuration and decides whether its source tags use the legacy spelling.
package formatver

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned by Parse for strings that are not semantic versions.
var ErrInvalidVersion = errors.New("invalid format version")

const (
	// ADCRefactor is the first format version using the current analog and
	// trim tag spellings.
	ADCRefactor = "2.10.0"

	// Current is the format version written by encoders.
	Current = "2.11.0"
)

// Version is a parsed format version. The zero value is "unknown", which
// predates every threshold.
type Version struct {
	canonical string
}

// Parse accepts "2.10.0", "v2.10", "2.10.0-rc1" and similar.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	v := raw
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}
	return Version{canonical: semver.Canonical(v)}, nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseOrUnknown returns the unknown version for malformed input.
func ParseOrUnknown(s string) Version {
	v, _ := Parse(s)
	return v
}

// CurrentVersion returns the version written by encoders.
func CurrentVersion() Version {
	return MustParse(Current)
}

// IsUnknown reports whether v was never parsed successfully.
func (v Version) IsUnknown() bool {
	return v.canonical == ""
}

// Compare returns -1, 0 or +1. Unknown sorts before any known version.
func (v Version) Compare(other Version) int {
	switch {
	case v.IsUnknown() && other.IsUnknown():
		return 0
	case v.IsUnknown():
		return -1
	case other.IsUnknown():
		return 1
	}
	return semver.Compare(v.canonical, other.canonical)
}

// Before reports whether v precedes other.
func (v Version) Before(other Version) bool {
	return v.Compare(other) < 0
}

// String returns the version without the leading "v", or "" when unknown.
func (v Version) String() string {
	return strings.TrimPrefix(v.canonical, "v")
}

// Gate decides whether a document version needs legacy tag translation.
type Gate struct {
	threshold Version
}

// NewGate returns a gate for the given threshold.
func NewGate(threshold Version) Gate {
	return Gate{threshold: threshold}
}

// DefaultGate is the gate at the analog/trim refactor.
func DefaultGate() Gate {
	return NewGate(MustParse(ADCRefactor))
}

// IsLegacy reports whether v precedes the threshold. Unknown versions are legacy.
func (g Gate) IsLegacy(v Version) bool {
	return v.Before(g.threshold)
}

// IsLegacy applies the default gate.
func IsLegacy(v Version) bool {
	return DefaultGate().IsLegacy(v)
}

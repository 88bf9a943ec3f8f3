package rawsource

import (
	"strconv"
	"strings"
)

// parseLeadingInt reads an optionally signed decimal integer from the start
// of s, after any leading spaces, and returns it with the unread remainder.
// Anything after the digits is ignored. ok is false when no digits are
// present or the value overflows an int.
//
// Persisted tokens have always been read this way, so "ch(3)", "ch(3" and
// "ch(3)junk" all name channel 3.
func parseLeadingInt(s string) (n int, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, s, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, s, false
	}
	return n, s[end:], true
}

// parseIndexAfter strips prefix and reads a non-negative leading integer.
func parseIndexAfter(s, prefix string) (int, bool) {
	if len(s) <= len(prefix) || !strings.HasPrefix(s, prefix) {
		return 0, false
	}
	n, _, ok := parseLeadingInt(s[len(prefix):])
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

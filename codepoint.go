package glyphraster

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxCodepoint is the largest Unicode scalar value.
const MaxCodepoint = 0x10FFFF

// CodepointRange is an inclusive range of codepoints. Start <= End.
type CodepointRange struct {
	Start, End uint32
}

// NewRange returns the range [start, end].
// It fails with ErrInvalidRangeOrder when start > end and with
// ErrCodepointOutOfRange when end is above MaxCodepoint.
func NewRange(start, end uint32) (CodepointRange, error) {
	if start > end {
		return CodepointRange{}, ErrInvalidRangeOrder
	}
	if end > MaxCodepoint {
		return CodepointRange{}, ErrCodepointOutOfRange
	}
	return CodepointRange{Start: start, End: end}, nil
}

// Len returns the number of codepoints in the range.
func (r CodepointRange) Len() int {
	return int(r.End-r.Start) + 1
}

// Contains reports whether cp lies within the range.
func (r CodepointRange) Contains(cp uint32) bool {
	return cp >= r.Start && cp <= r.End
}

// String returns the range in U+ notation.
func (r CodepointRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("U+%04X", r.Start)
	}
	return fmt.Sprintf("U+%04X..U+%04X", r.Start, r.End)
}

// ParseCodepoint parses a single codepoint written as hexadecimal with a
// 0x prefix, Unicode notation with a U+ prefix, or plain decimal.
// Surrounding whitespace is ignored.
func ParseCodepoint(s string) (uint32, error) {
	v, ok := parseCodepoint(s)
	if !ok {
		return 0, &RangeError{Input: s, Err: ErrInvalidRangeFormat}
	}
	return v, nil
}

func parseCodepoint(s string) (uint32, bool) {
	s = strings.TrimSpace(s)

	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"),
		strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// ParseRange parses a range specification. Accepted forms are "a..b",
// "a-b" and a single endpoint "a" meaning a..a, where each endpoint is
// accepted by ParseCodepoint.
//
// Order is checked before bounds: "0x110000..0x10FFFF" fails with
// ErrInvalidRangeOrder. Errors are *RangeError values.
func ParseRange(s string) (CodepointRange, error) {
	startStr, endStr := splitRange(strings.TrimSpace(s))

	start, ok := parseCodepoint(startStr)
	if !ok {
		return CodepointRange{}, &RangeError{Input: s, Err: ErrInvalidRangeFormat}
	}
	end, ok := parseCodepoint(endStr)
	if !ok {
		return CodepointRange{}, &RangeError{Input: s, Err: ErrInvalidRangeFormat}
	}

	r, err := NewRange(start, end)
	if err != nil {
		return CodepointRange{}, &RangeError{Input: s, Err: err}
	}
	return r, nil
}

// splitRange splits s at ".." or at a dash between two endpoints.
// A leading dash is not a separator, so "-5" stays a single (invalid)
// endpoint.
func splitRange(s string) (string, string) {
	if start, end, ok := strings.Cut(s, ".."); ok {
		return start, end
	}
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i], s[i+1:]
	}
	return s, s
}

// CodepointSet is a strictly increasing sequence of codepoints.
type CodepointSet []uint32

// NewCodepointSet returns a sorted, deduplicated copy of cps.
func NewCodepointSet(cps []uint32) CodepointSet {
	set := slices.Clone(cps)
	slices.Sort(set)
	return CodepointSet(slices.Compact(set))
}

// ResolveRanges parses every spec and returns the union of their
// codepoints in ascending order. The result does not depend on the order
// of specs. The first invalid spec aborts resolution.
func ResolveRanges(specs ...string) (CodepointSet, error) {
	ranges := make([]CodepointRange, 0, len(specs))
	for _, spec := range specs {
		r, err := ParseRange(spec)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return unionRanges(ranges), nil
}

// unionRanges merges overlapping and adjacent ranges, then expands them.
func unionRanges(ranges []CodepointRange) CodepointSet {
	if len(ranges) == 0 {
		return CodepointSet{}
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b CodepointRange) int {
		return cmp.Compare(a.Start, b.Start)
	})

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+1 {
			last.End = max(last.End, r.End)
			continue
		}
		merged = append(merged, r)
	}

	n := 0
	for _, r := range merged {
		n += r.Len()
	}
	set := make(CodepointSet, 0, n)
	for _, r := range merged {
		for cp := r.Start; ; cp++ {
			set = append(set, cp)
			if cp == r.End {
				break
			}
		}
	}
	return set
}

// Len returns the number of codepoints in the set.
func (s CodepointSet) Len() int {
	return len(s)
}

// Contains reports whether cp is in the set.
func (s CodepointSet) Contains(cp uint32) bool {
	_, found := slices.BinarySearch(s, cp)
	return found
}

// Filter returns the codepoints for which keep returns true, in order.
func (s CodepointSet) Filter(keep func(rune) bool) CodepointSet {
	out := make(CodepointSet, 0, len(s))
	for _, cp := range s {
		if keep(rune(cp)) {
			out = append(out, cp)
		}
	}
	return out
}

package validation

import (
	"strconv"
	"strings"
	"unicode"
)

// Zone is a set of four-digit postal code prefixes a restaurant delivers to.
type Zone struct {
	prefixes map[string]struct{}
}

// NewZone builds a zone from explicit prefixes.
func NewZone(prefixes ...string) Zone {
	z := Zone{prefixes: make(map[string]struct{}, len(prefixes))}
	for _, p := range prefixes {
		z.prefixes[p] = struct{}{}
	}

	return z
}

// DefaultZone covers the Den Haag postal districts.
var DefaultZone = NewZone(denHaagPrefixes()...)

func denHaagPrefixes() []string {
	ranges := [][2]int{
		{2491, 2498},
		{2511, 2518},
		{2521, 2526},
		{2531, 2537},
		{2541, 2548},
		{2551, 2555},
		{2561, 2566},
		{2571, 2574},
		{2581, 2587},
		{2591, 2597},
	}

	var out []string
	for _, r := range ranges {
		for p := r[0]; p <= r[1]; p++ {
			out = append(out, strconv.Itoa(p))
		}
	}

	return out
}

// Contains reports whether the normalized code falls inside the zone.
func (z Zone) Contains(postalCode string) bool {
	_, ok := z.prefixes[Prefix(postalCode)]

	return ok
}

// Validate returns ErrOutsideDeliveryZone for codes outside the zone.
func (z Zone) Validate(postalCode string) error {
	if !z.Contains(postalCode) {
		return ErrOutsideDeliveryZone
	}

	return nil
}

// Prefix strips whitespace, uppercases and keeps the first four characters.
func Prefix(postalCode string) string {
	cleaned := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, postalCode))
	if len(cleaned) > postalPrefixLen {
		cleaned = cleaned[:postalPrefixLen]
	}

	return cleaned
}

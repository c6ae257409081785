// Package mappings provides the bidirectional department mapping between
// the canonical, museum-agnostic taxonomy shown to callers and each
// museum's native department strings.
//
// When adding a new museum, add its values to departmentMap keyed by the
// museum's short code in lowercase.
package mappings

import "strings"

// canonicalDepartments is the ordered canonical taxonomy. These names are
// intuitive groupings that map reasonably onto both the CMA and AIC
// department structures.
var canonicalDepartments = []string{
	"African Art",
	"American Art",
	"Ancient Near Eastern Art",
	"Asian Art",
	"Contemporary Art",
	"Decorative Arts",
	"Drawings",
	"Egyptian Art",
	"European Art",
	"Greek and Roman Art",
	"Islamic Art",
	"Medieval Art",
	"Modern Art",
	"Photography",
	"Prints",
	"Textiles",
}

// departmentMap maps canonical name -> museum code -> native values.
// A missing museum key means the museum has no equivalent; one value means
// an exact match; multiple values mean any-of (the museum's taxonomy is
// finer-grained than the canonical one).
var departmentMap = map[string]map[string][]string{
	"African Art": {
		"cma": {"African Art"},
		"aic": {"Arts of Africa"},
	},
	"American Art": {
		"cma": {"American Painting and Sculpture"},
		"aic": {"American Art"},
	},
	"Ancient Near Eastern Art": {
		"cma": {"Egyptian and Ancient Near Eastern Art"},
		"aic": {"Ancient and Byzantine Art"},
	},
	"Asian Art": {
		"cma": {"Chinese Art", "Japanese Art", "Korean Art", "Indian and South East Asian Art"},
		"aic": {"Asian Art"},
	},
	"Contemporary Art": {
		"cma": {"Contemporary Art"},
		"aic": {"Contemporary Art"},
	},
	"Decorative Arts": {
		"cma": {"Decorative Art and Design"},
		"aic": {"Applied Arts of Europe"},
	},
	"Drawings": {
		"cma": {"Drawings"},
		"aic": {"Prints and Drawings"}, // AIC combines these
	},
	"Egyptian Art": {
		"cma": {"Egyptian and Ancient Near Eastern Art"},
		"aic": {"Ancient and Byzantine Art"},
	},
	"European Art": {
		"cma": {"European Painting and Sculpture", "Modern European Painting and Sculpture"},
		"aic": {"Painting and Sculpture of Europe", "European Decorative Arts"},
	},
	"Greek and Roman Art": {
		"cma": {"Greek and Roman Art"},
		"aic": {"Ancient and Byzantine Art"},
	},
	"Islamic Art": {
		"cma": {"Islamic Art"},
		"aic": {"Islamic Art"},
	},
	"Medieval Art": {
		"cma": {"Medieval Art"},
		"aic": {"Medieval Art"},
	},
	"Modern Art": {
		"cma": {"Modern European Painting and Sculpture"},
		"aic": {"Modern Art"},
	},
	"Photography": {
		"cma": {"Photography"},
		"aic": {"Photography and Media"},
	},
	"Prints": {
		"cma": {"Prints"},
		"aic": {"Prints and Drawings"}, // AIC combines these
	},
	"Textiles": {
		"cma": {"Textiles"},
		"aic": {"Textiles"},
	},
}

// reverseMap indexes lowercased native value -> canonical name, per museum.
// Derived once at startup; the forward map never changes at runtime.
var reverseMap map[string]map[string]string

func init() {
	reverseMap = make(map[string]map[string]string)

	// Iterate in canonical order so reverse-lookup collisions resolve
	// deterministically: the entry processed last wins. Two canonical
	// entries sharing a native value (e.g. "Egyptian Art" and "Ancient
	// Near Eastern Art" both map to CMA's combined department) is an
	// accepted ambiguity, not an error.
	for _, canonical := range canonicalDepartments {
		for museum, values := range departmentMap[canonical] {
			if reverseMap[museum] == nil {
				reverseMap[museum] = make(map[string]string)
			}
			for _, v := range values {
				reverseMap[museum][strings.ToLower(v)] = canonical
			}
		}
	}
}

// CanonicalDepartments returns the canonical department names in display
// order. The caller owns the returned slice.
func CanonicalDepartments() []string {
	out := make([]string, len(canonicalDepartments))
	copy(out, canonicalDepartments)
	return out
}

// ToMuseum maps a canonical department name to the museum's native
// value(s). One value means an exact match, several mean any-of, nil means
// the museum has no equivalent. Canonical names are matched case-sensitively.
func ToMuseum(canonical, museum string) []string {
	values := departmentMap[canonical][strings.ToLower(museum)]
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// FromMuseum maps a museum's native department name back to a canonical
// one. The native side is matched case-insensitively. Returns false when no
// mapping exists.
func FromMuseum(native, museum string) (string, bool) {
	m := reverseMap[strings.ToLower(museum)]
	if m == nil {
		return "", false
	}
	canonical, ok := m[strings.ToLower(native)]
	return canonical, ok
}

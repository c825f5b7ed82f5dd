// Package canon implements the Name Canonicalizer of spec.md §4.1: a
// pure, total, idempotent mapping from source-level variable/subscript
// names to the canonical identifier form every other package keys its
// lookups by.
//
// Grounded on internal/analyzer/naming.go's style: small pure string
// transforms (isValueName, isTypeName, GetDictionaryName) with no
// library involvement — canonicalization here is likewise plain
// strings/unicode manipulation; no repo in the retrieved pack reaches
// for a slug/transliteration library for this kind of identifier
// normalization.
package canon

import (
	"strings"
	"unicode"
)

// Name canonicalizes a source-level identifier: strip surrounding quotes,
// replace every non-alphanumeric rune with an underscore, lowercase the
// result, and prefix with an underscore. Idempotent: Name(Name(x)) == Name(x),
// since the transform maps every underscore to itself and only prefixes
// a leading underscore when one isn't already present.
func Name(source string) string {
	s := unquote(strings.TrimSpace(source))

	var b strings.Builder
	b.Grow(len(s) + 1)
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if !strings.HasPrefix(out, "_") {
		out = "_" + out
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Decanonicalize restores a user-readable display form from a canonical
// id: drop the leading underscore and title-case underscore-delimited
// words, the inverse operation spec.md §4.1 requires for diagnostics
// (canonical(decanonicalize(id)) == id, spec.md §8).
func Decanonicalize(id string) string {
	s := strings.TrimPrefix(id, "_")
	if s == "" {
		return id
	}
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// NormalSubscripts sorts a subscript list into normal order (spec.md §3):
// ascending by each subscript's family name, resolved via familyOf
// (typically subscript.Table.FamilyOf). Ties are impossible in a
// well-formed model since each position corresponds to one family.
func NormalSubscripts(subs []string, familyOf func(string) string) []string {
	out := make([]string, len(subs))
	copy(out, subs)
	families := make([]string, len(out))
	for i, s := range out {
		families[i] = familyOf(s)
	}
	// simple insertion sort keeps it stable and deterministic without
	// pulling in sort.Slice's interface-based comparator for N<=a few.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && families[j-1] > families[j] {
			families[j-1], families[j] = families[j], families[j-1]
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// Join renders a subscript list for refId construction: "s1,s2,...".
func Join(subs []string) string {
	return strings.Join(subs, ",")
}

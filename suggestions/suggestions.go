// Package suggestions provides the local drug-name autocomplete index:
// a fixed in-memory list filtered by case- and accent-insensitive
// substring match, with exact-prefix matches ranked first.
package suggestions

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxResults caps the number of suggestions returned per query.
const MaxResults = 10

// MinQueryLength is the minimum query length that yields suggestions.
const MinQueryLength = 2

// foldTransformer strips diacritics so "dipirona" matches "Dipirona Sódica".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

type entry struct {
	name   string
	folded string
}

// Index is the in-memory suggestion index.
type Index struct {
	entries []entry
}

// NewIndex builds an index from the given drug names.
func NewIndex(names []string) *Index {
	idx := &Index{entries: make([]entry, 0, len(names))}
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		idx.entries = append(idx.entries, entry{name: trimmed, folded: fold(trimmed)})
	}
	return idx
}

// NewDefaultIndex builds the index over the bundled ANVISA-derived list.
func NewDefaultIndex() *Index {
	return NewIndex(DrugNames)
}

// Suggest returns up to MaxResults drug names containing the query,
// prefix matches before other substring matches, ties broken
// lexicographically. Queries shorter than MinQueryLength yield nothing.
func (idx *Index) Suggest(query string) []string {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < MinQueryLength {
		return []string{}
	}
	needle := fold(trimmed)

	type match struct {
		name   string
		prefix bool
	}
	var matches []match
	for _, e := range idx.entries {
		if strings.Contains(e.folded, needle) {
			matches = append(matches, match{name: e.name, prefix: strings.HasPrefix(e.folded, needle)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})

	results := make([]string, 0, MaxResults)
	for _, m := range matches {
		if len(results) == MaxResults {
			break
		}
		results = append(results, m.name)
	}
	return results
}

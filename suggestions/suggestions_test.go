package suggestions

import (
	"strings"
	"testing"
)

func TestSuggestPrefixRanking(t *testing.T) {
	idx := NewIndex([]string{"Dibucaína", "Ibuprofeno", "Dipirona"})

	got := idx.Suggest("ibu")

	if len(got) != 2 {
		t.Fatalf("got %d results %v, want 2", len(got), got)
	}
	if got[0] != "Ibuprofeno" {
		t.Errorf("prefix match should rank first, got %v", got)
	}
	if got[1] != "Dibucaína" {
		t.Errorf("substring match should rank second, got %v", got)
	}
}

func TestSuggestAccentInsensitive(t *testing.T) {
	idx := NewIndex([]string{"Dipirona Sódica", "Ácido Acetilsalicílico"})

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unaccented query matches accented name", "sodica", "Dipirona Sódica"},
		{"accented query matches", "ácido", "Ácido Acetilsalicílico"},
		{"case insensitive", "DIPIRONA", "Dipirona Sódica"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Suggest(tt.query)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Suggest(%q) = %v, want [%s]", tt.query, got, tt.want)
			}
		})
	}
}

func TestSuggestMinQueryLength(t *testing.T) {
	idx := NewDefaultIndex()

	for _, query := range []string{"", "a", " a ", "á"} {
		if got := idx.Suggest(query); len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want empty for short query", query, got)
		}
	}
}

func TestSuggestCapsResults(t *testing.T) {
	names := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		names = append(names, "Amoxil "+strings.Repeat("a", i+1))
	}
	idx := NewIndex(names)

	got := idx.Suggest("amoxil")
	if len(got) != MaxResults {
		t.Errorf("got %d results, want cap of %d", len(got), MaxResults)
	}
}

func TestSuggestNoMatch(t *testing.T) {
	idx := NewDefaultIndex()

	got := idx.Suggest("zzzzzz")
	if len(got) != 0 {
		t.Errorf("Suggest on nonsense query = %v, want empty", got)
	}
	if got == nil {
		t.Error("Suggest should return an empty slice, not nil")
	}
}

func TestDefaultIndexHasKnownDrugs(t *testing.T) {
	idx := NewDefaultIndex()

	got := idx.Suggest("dipirona")
	found := false
	for _, name := range got {
		if strings.HasPrefix(name, "Dipirona") {
			found = true
		}
	}
	if !found {
		t.Errorf("default index should suggest Dipirona, got %v", got)
	}
}

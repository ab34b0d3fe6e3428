package page

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		token string
		mode  Mode
	}{
		{"00010", ModeList},
		{"00013", ModeList},
		{"12349", ModeList},
		{"00010-000", ModePaged},
		{"00012-017", ModePaged},
		{"0001-000", ModePaged},
		{"0002-123", ModePaged},
		{"00010-1234", ModePaged},
	}
	for _, tt := range tests {
		k, err := Parse(tt.token, tt.mode)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.token, err)
		}
		if got := k.String(); got != tt.token {
			t.Fatalf("expected %q to format back unchanged, got %q", tt.token, got)
		}
	}
}

func TestParseFields(t *testing.T) {
	k, err := Parse("00123-045", ModePaged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Chapter.Major != 12 || k.Chapter.Minor != 3 || k.Page != 45 {
		t.Fatalf("unexpected key %+v", k)
	}

	k, err = Parse("00120", ModeList)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Chapter.HasMinor() {
		t.Fatalf("minor 0 should mean no minor, got %+v", k.Chapter)
	}
	if k.HasPage() {
		t.Fatalf("list keys carry no page, got %d", k.Page)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		token string
		mode  Mode
	}{
		{"", ModeList},
		{"0001", ModeList},
		{"a0010", ModeList},
		{"0001x", ModeList},
		{"00010-001", ModeList},
		{"00010", ModePaged},
		{"00010-", ModePaged},
		{"00010x001", ModePaged},
		{"00010-0a1", ModePaged},
		{"00010--01", ModePaged},
		{"00010-+01", ModePaged},
		{"0001-18446744073709551615", ModePaged},
		{"0001-18446744073709551616", ModePaged},
		{"00010-9223372036854775808", ModePaged},
	}
	for _, tt := range tests {
		_, err := Parse(tt.token, tt.mode)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ParseError for %q (%s), got %v", tt.token, tt.mode, err)
		}
	}
}

func TestCompareChapters(t *testing.T) {
	ordered := []Key{
		NewKey(1, 0, NoPage),
		NewKey(1, 1, NoPage),
		NewKey(2, 0, NoPage),
	}
	for i := 0; i+1 < len(ordered); i++ {
		if Compare(ordered[i], ordered[i+1]) >= 0 {
			t.Fatalf("expected %s < %s", ordered[i], ordered[i+1])
		}
		if Compare(ordered[i+1], ordered[i]) <= 0 {
			t.Fatalf("expected %s > %s", ordered[i+1], ordered[i])
		}
	}
}

func TestComparePages(t *testing.T) {
	none := NewKey(3, 0, NoPage)
	zero := NewKey(3, 0, 0)
	if Compare(none, zero) >= 0 {
		t.Fatalf("expected a missing page to sort before page 0")
	}
	if Compare(NewKey(3, 0, 9), NewKey(3, 0, 10)) >= 0 {
		t.Fatalf("expected pages to compare numerically")
	}
}

func TestEqualIgnoresLayout(t *testing.T) {
	a, err := Parse("0001-001", ModePaged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse("00010-001", ModePaged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected %s and %s to name the same page", a, b)
	}
	if a.Chapter.String() != b.Chapter.String() {
		t.Fatalf("chapter identity differs: %s vs %s", a.Chapter, b.Chapter)
	}
}

func TestModeFor(t *testing.T) {
	if ModeFor("00010") != ModeList {
		t.Fatalf("expected list mode without separator")
	}
	if ModeFor("0001-000") != ModePaged {
		t.Fatalf("expected paged mode with separator")
	}
}

func TestParseLargestPage(t *testing.T) {
	k, err := Parse("0001-"+strconv.Itoa(math.MaxInt), ModePaged)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if k.Page != math.MaxInt || !k.HasPage() {
		t.Fatalf("unexpected key %+v", k)
	}
}

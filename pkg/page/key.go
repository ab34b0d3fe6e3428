// Package page parses page tokens and builds the ordered page index of a
// series.
package page

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Mode selects how tokens are parsed and formatted for a whole session.
type Mode int

const (
	// ModeList treats every entry as a chapter-level document with no page.
	ModeList Mode = iota
	// ModePaged requires every entry to carry a page number.
	ModePaged
)

// Separator divides the chapter from the page number in paged tokens.
const Separator = '-'

// NoPage marks a Key without a page number.
const NoPage = -1

const (
	majorWidth = 4
	minorWidth = 1
)

func (m Mode) String() string {
	if m == ModePaged {
		return "paged"
	}
	return "list"
}

// ModeFor derives the session mode from the persisted marker.
func ModeFor(marker string) Mode {
	if strings.ContainsRune(marker, Separator) {
		return ModePaged
	}
	return ModeList
}

// Chapter is a major number with an optional minor number. A Minor of zero
// means there is no minor.
type Chapter struct {
	Major int
	Minor int
}

// HasMinor reports whether the chapter carries a minor number.
func (c Chapter) HasMinor() bool { return c.Minor != 0 }

func (c Chapter) String() string {
	return fmt.Sprintf("%04d%d", c.Major, c.Minor)
}

// Key identifies one entry of a series and orders it.
//
// Paged tokens may omit the minor digit when there is none ("0001-000"). The
// key remembers that layout so it formats back to the token it came from;
// ordering and equality ignore it.
type Key struct {
	Chapter Chapter
	Page    int

	compact bool
}

// NewKey builds a key in the canonical layout. Use NoPage for list entries.
func NewKey(major, minor, page int) Key {
	return Key{Chapter: Chapter{Major: major, Minor: minor}, Page: page}
}

// HasPage reports whether the key carries a page number.
func (k Key) HasPage() bool { return k.Page != NoPage }

// Equal reports whether two keys name the same entry.
func (k Key) Equal(o Key) bool { return Compare(k, o) == 0 }

// String renders the token; the page suffix is only present for keys parsed
// in paged mode.
func (k Key) String() string {
	if !k.HasPage() {
		return k.Chapter.String()
	}
	if k.compact && !k.Chapter.HasMinor() {
		return fmt.Sprintf("%04d%c%03d", k.Chapter.Major, Separator, k.Page)
	}
	return fmt.Sprintf("%s%c%03d", k.Chapter, Separator, k.Page)
}

// ParseError is returned for tokens that do not follow the fixed layout.
type ParseError struct {
	Token string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("page: parse %q: %s: %v", e.Token, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errShort   = errors.New("token too short")
	errDigits  = errors.New("not a number")
	errTrailer = errors.New("unexpected trailing characters")
	errSep     = fmt.Errorf("expected separator %q", Separator)
)

// Parse reads a token in the given mode.
func Parse(token string, mode Mode) (Key, error) {
	fail := func(field string, err error) (Key, error) {
		return Key{}, &ParseError{Token: token, Field: field, Err: err}
	}

	if len(token) < majorWidth+minorWidth {
		return fail("chapter", errShort)
	}
	major, ok := atoi(token[:majorWidth])
	if !ok {
		return fail("major", errDigits)
	}
	k := Key{Chapter: Chapter{Major: major}, Page: NoPage}

	var rest string
	if mode == ModePaged && token[majorWidth] == Separator {
		k.compact = true
		rest = token[majorWidth:]
	} else {
		minor, ok := atoi(token[majorWidth : majorWidth+minorWidth])
		if !ok {
			return fail("minor", errDigits)
		}
		k.Chapter.Minor = minor
		rest = token[majorWidth+minorWidth:]
	}

	if mode == ModeList {
		if rest != "" {
			return fail("chapter", errTrailer)
		}
		return k, nil
	}

	if rest == "" {
		return fail("page", errShort)
	}
	if rest[0] != Separator {
		return fail("separator", errSep)
	}
	p, ok := atoi(rest[1:])
	if !ok {
		return fail("page", errDigits)
	}
	k.Page = p
	return k, nil
}

// Compare orders keys by chapter, then by page. A missing minor or page sorts
// before any present one.
func Compare(a, b Key) int {
	switch {
	case a.Chapter.Major != b.Chapter.Major:
		return cmpInt(a.Chapter.Major, b.Chapter.Major)
	case a.Chapter.Minor != b.Chapter.Minor:
		return cmpInt(a.Chapter.Minor, b.Chapter.Minor)
	default:
		return cmpInt(a.Page, b.Page)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// atoi accepts only ASCII digits, unlike strconv.Atoi which allows a sign.
// Values that do not fit in an int are rejected.
func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if n > (math.MaxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

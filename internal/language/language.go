package language

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

type entry struct {
	code    string   // ISO 639-1 (2-letter)
	display string   // Human-readable name
	words   []string // Full word forms accepted in headers
}

// languages lists every language the index tracks, in output seeding order.
var languages = []entry{
	{"en", "English", []string{"english"}},
	{"es", "Spanish", []string{"spanish"}},
	{"de", "German", []string{"german"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

// Lower lowercases s with Unicode case rules.
func Lower(s string) string {
	return cases.Lower(xlang.Und).String(s)
}

// Capitalize uppercases the first letter of s and lowercases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(xlang.Und).String(s[:size]) + Lower(s[size:])
}

// Normalize maps a raw header value to a tracked language code. Full names
// (english, spanish, german) map to their codes; any other value is taken
// verbatim after lowercasing. ok is false when the result is not tracked.
func Normalize(raw string) (string, bool) {
	value := Lower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	if e, ok := byWord[value]; ok {
		return e.code, true
	}
	if _, ok := byCode[value]; ok {
		return value, true
	}
	return value, false
}

// Codes returns the tracked language codes in seeding order.
func Codes() []string {
	codes := make([]string, 0, len(languages))
	for _, e := range languages {
		codes = append(codes, e.code)
	}
	return codes
}

// DisplayName returns the English name of a tracked language code, or the
// code unchanged when it is not tracked.
func DisplayName(code string) string {
	if e, ok := byCode[Lower(strings.TrimSpace(code))]; ok {
		return e.display
	}
	return code
}

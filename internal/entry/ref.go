package entry

import "strings"

// EntryRef addresses one config entry by its raw line. Two entries are the
// same record iff their raw strings are equal.
type EntryRef struct {
	raw string
}

// Ref wraps a raw line as read from the backend.
func Ref(raw string) EntryRef {
	return EntryRef{raw: raw}
}

// ParseEscaped reverses Escaped.
func ParseEscaped(s string) EntryRef {
	return EntryRef{raw: Unescape(s)}
}

// Raw returns the unescaped line, exactly as the backend sent it.
func (r EntryRef) Raw() string { return r.raw }

func (r EntryRef) IsZero() bool { return r.raw == "" }

func (r EntryRef) Equal(other EntryRef) bool { return r.raw == other.raw }

func (r EntryRef) String() string { return r.raw }

// Escaped returns the raw line made safe for a single-quoted markup attribute.
func (r EntryRef) Escaped() string { return EscapeForMarkup(r.raw) }

func (r EntryRef) MarshalText() ([]byte, error) {
	return []byte(r.raw), nil
}

func (r *EntryRef) UnmarshalText(b []byte) error {
	r.raw = string(b)
	return nil
}

var (
	markupEscaper   = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	markupUnescaper = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)

// EscapeForMarkup escapes backslashes and single quotes. Unescape restores the
// original text exactly.
func EscapeForMarkup(s string) string {
	return markupEscaper.Replace(s)
}

func Unescape(s string) string {
	return markupUnescaper.Replace(s)
}

package link

import (
	"fmt"
	"strconv"
	"strings"
)

// Key addresses a single definition (sense) of a lemma
type Key struct {
	Language string
	Lemma    string
	Index    int
}

// String renders the key as lang:lemma:index
func (k Key) String() string {
	return k.Language + ":" + k.Lemma + ":" + strconv.Itoa(k.Index)
}

// Reference is a typed pointer to a definition
type Reference struct {
	Type     string
	Language string
	Lemma    string
	Index    int
}

// Key returns the definition key the reference points at
func (r Reference) Key() Key {
	return Key{Language: r.Language, Lemma: r.Lemma, Index: r.Index}
}

// Anchor is the in-page fragment identifying the referenced sense
func (r Reference) Anchor() string {
	return AnchorID(r.Lemma, r.Index)
}

// Label is the human readable form used for link text
func (r Reference) Label() string {
	return fmt.Sprintf("%s: %s(%d)", r.Language, r.Lemma, r.Index)
}

// Href returns the page-relative URL of the referenced sense. References into
// currentLanguage stay on the same page.
func (r Reference) Href(currentLanguage string) string {
	if currentLanguage != "" && currentLanguage == r.Language {
		return "#" + r.Anchor()
	}
	return r.Language + ".html#" + r.Anchor()
}

func (r Reference) String() string {
	return r.Type + "->" + r.Key().String()
}

// AnchorID builds the fragment id for a sense; index 0 addresses the lemma.
func AnchorID(lemma string, index int) string {
	if index <= 0 {
		return lemma
	}
	return lemma + ":" + strconv.Itoa(index)
}

// Group is the set of references of one type, in registration order
type Group struct {
	Type       string
	References []Reference
}

// ParseKey parses a fully qualified lang:lemma[:index] token into a Key.
// Unlike Parse there is no current language to fall back on.
func ParseKey(token string) (Key, error) {
	ref, err := Parse(token, "", "")
	if err != nil {
		return Key{}, err
	}
	if ref.Language == "" {
		return Key{}, malformed(token, "a language is required")
	}
	return ref.Key(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

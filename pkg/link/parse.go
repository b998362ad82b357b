package link

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/dictus/pkg/errors"
)

// Token holds the parts of a reference token as written. Language is empty
// and Index is 0 when the token omits them.
type Token struct {
	Language string
	Lemma    string
	Index    int
}

// ParseToken splits a reference token without applying any defaults.
func ParseToken(raw string) (Token, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return Token{}, malformed(raw, "empty reference")
	}

	parts := strings.Split(token, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var lang, lemma, index string
	switch len(parts) {
	case 1:
		lemma = parts[0]
	case 2:
		// word:4 is sense 4 of word, never language "word" / lemma "4"
		if isDigits(parts[1]) && !isDigits(parts[0]) {
			lemma, index = parts[0], parts[1]
		} else {
			lang, lemma = parts[0], parts[1]
		}
	case 3:
		lang, lemma, index = parts[0], parts[1], parts[2]
	default:
		return Token{}, malformed(raw, "too many ':' separated segments")
	}

	if lemma == "" {
		return Token{}, malformed(raw, "missing lemma")
	}
	if lang != "" && lang[0] >= '0' && lang[0] <= '9' {
		return Token{}, malformed(raw, "language must not start with a digit")
	}

	t := Token{Language: lang, Lemma: lemma}
	if index != "" {
		if !isDigits(index) {
			return Token{}, malformed(raw, "sense index must be a positive integer")
		}
		n, err := strconv.Atoi(index)
		if err != nil || n < 1 {
			return Token{}, malformed(raw, "sense index must be a positive integer")
		}
		t.Index = n
	}
	return t, nil
}

// Parse turns a reference token into a Reference of the given type. A token
// without a language refers to currentLanguage; one without an index refers to
// the first sense. Language tokens are not resolved here.
func Parse(raw, currentLanguage, typeLabel string) (Reference, error) {
	t, err := ParseToken(raw)
	if err != nil {
		return Reference{}, err
	}

	ref := Reference{
		Type:     typeLabel,
		Language: t.Language,
		Lemma:    t.Lemma,
		Index:    t.Index,
	}
	if ref.Language == "" {
		ref.Language = currentLanguage
	}
	if ref.Index == 0 {
		ref.Index = 1
	}
	return ref, nil
}

func malformed(token, reason string) *errors.DictusError {
	return errors.Newf(errors.ErrMalformedReference, "malformed reference %q: %s", token, reason).
		WithDetail("token", token)
}

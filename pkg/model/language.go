package model

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/dictus/pkg/errors"
	"github.com/arthur-debert/dictus/pkg/tree"
)

// Language is one dictionary, built from one source file
type Language struct {
	Name        string
	DisplayName string
	// Order is nil for languages that declare no order; they sort last.
	Order  *int
	Extra  *tree.Map
	POS    []string
	Lemmas []*Lemma

	posSet map[string]struct{}
	index  map[string]*Lemma
}

type languageMetadata struct {
	DisplayName string         `mapstructure:"display_name"`
	Order       *int           `mapstructure:"order"`
	Rest        map[string]any `mapstructure:",remain"`
}

var nameSeparators = strings.NewReplacer("_", " ", "-", " ")

// DisplayNameFor is the default display name for a language identity:
// separators become spaces and each word is title cased.
func DisplayNameFor(name string) string {
	return cases.Title(language.Und).String(nameSeparators.Replace(name))
}

// integralHook rejects floats with a fraction where an int is expected
func integralHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	if to.Kind() != reflect.Int {
		return data, nil
	}
	if f, ok := data.(float64); ok && f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return data, nil
}

// NewLanguage creates a Language from its identity and optional metadata table
func NewLanguage(name string, metadata *tree.Map) (*Language, error) {
	lang := &Language{
		Name:        name,
		DisplayName: DisplayNameFor(name),
		Extra:       tree.NewMap(),
		posSet:      make(map[string]struct{}),
		index:       make(map[string]*Lemma),
	}
	if metadata.Len() == 0 {
		return lang, nil
	}

	var meta languageMetadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &meta,
		MatchName:  func(mapKey, fieldName string) bool { return mapKey == fieldName },
		DecodeHook: integralHook,
	})
	if err == nil {
		err = decoder.Decode(metadata.Plain())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidEntry, "invalid language metadata").
			WithDetail("language", name)
	}

	if meta.DisplayName != "" {
		lang.DisplayName = meta.DisplayName
	}
	lang.Order = meta.Order

	// Rest is unordered; walk the source table to keep extras in file order.
	metadata.Each(func(key string, value any) bool {
		if _, ok := meta.Rest[key]; ok {
			lang.Extra.Set(key, value)
		}
		return true
	})

	return lang, nil
}

// AddLemma appends a lemma. A later lemma with the same name shadows the
// earlier one for Lemma lookups.
func (l *Language) AddLemma(lemma *Lemma) {
	l.Lemmas = append(l.Lemmas, lemma)
	if l.index == nil {
		l.index = make(map[string]*Lemma)
	}
	l.index[lemma.Name] = lemma
}

// Lemma returns the lemma with the given name
func (l *Language) Lemma(name string) (*Lemma, bool) {
	lemma, ok := l.index[name]
	return lemma, ok
}

// AddPOS folds part-of-speech labels into the language's set, case-insensitively
func (l *Language) AddPOS(labels ...string) {
	if l.posSet == nil {
		l.posSet = make(map[string]struct{})
	}
	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		l.posSet[label] = struct{}{}
	}
}

// Finalize materialises POS as a sorted list. Call it once every definition
// of the language has been built.
func (l *Language) Finalize() {
	pos := make([]string, 0, len(l.posSet))
	for label := range l.posSet {
		pos = append(pos, label)
	}
	sort.Strings(pos)
	l.POS = pos
}

// IsEmpty reports whether the language has no lemmas
func (l *Language) IsEmpty() bool {
	return len(l.Lemmas) == 0
}

// SortKey orders languages: declared orders ascending, undeclared last
func (l *Language) SortKey() (int, bool) {
	if l.Order == nil {
		return 0, false
	}
	return *l.Order, true
}

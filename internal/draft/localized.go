package draft

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LocalizedString maps BCP 47 language tags to translated values.
// Keys are stored in canonical form ("en-US", not "EN-us").
type LocalizedString map[string]string

// OfLocale returns a single-entry LocalizedString.
func OfLocale(tag language.Tag, value string) LocalizedString {
	return LocalizedString{tag.String(): value}
}

// OfEnglish returns a LocalizedString with one English value.
func OfEnglish(value string) LocalizedString {
	return OfLocale(language.English, value)
}

// Get returns the value stored for tag.
func (l LocalizedString) Get(tag language.Tag) (string, bool) {
	v, ok := l[tag.String()]
	return v, ok
}

// Tags returns the parsed language tags of every entry.
func (l LocalizedString) Tags() []language.Tag {
	tags := make([]language.Tag, 0, len(l))
	for k := range l {
		if tag, err := language.Parse(k); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Clone returns a copy; nil stays nil.
func (l LocalizedString) Clone() LocalizedString {
	if l == nil {
		return nil
	}
	out := make(LocalizedString, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

func canonicalLocalized(raw map[string]string) (LocalizedString, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(LocalizedString, len(raw))
	for k, v := range raw {
		tag, err := language.Parse(k)
		if err != nil {
			return nil, fmt.Errorf("invalid language tag %q: %w", k, err)
		}
		out[tag.String()] = v
	}
	return out, nil
}

// UnmarshalJSON validates and canonicalizes language tags.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := canonicalLocalized(raw)
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// UnmarshalYAML validates and canonicalizes language tags.
func (l *LocalizedString) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out, err := canonicalLocalized(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*l = out
	return nil
}

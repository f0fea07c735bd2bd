package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing else is configured.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the header before parsing.
const maxAcceptLanguageLength = 4096

// Matcher picks the best supported language for a client preference.
type Matcher struct {
	supported []string
	matcher   language.Matcher
}

// NewMatcher builds a matcher over supported; the first entry is the fallback.
// Entries that are not valid BCP 47 tags are ignored.
func NewMatcher(supported ...string) *Matcher {
	m := &Matcher{}
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		m.supported = append(m.supported, s)
	}
	if len(tags) == 0 {
		tags = append(tags, language.English)
		m.supported = append(m.supported, DefaultLanguage)
	}
	m.matcher = language.NewMatcher(tags)
	return m
}

// Default returns the fallback language.
func (m *Matcher) Default() string { return m.supported[0] }

// Supported returns the configured languages in order.
func (m *Matcher) Supported() []string {
	return append([]string(nil), m.supported...)
}

// MatchAcceptLanguage negotiates an Accept-Language header. ok is false when
// the header is empty, malformed or nothing in it matches with at least
// low confidence; lang is then the fallback.
func (m *Matcher) MatchAcceptLanguage(header string) (lang string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return m.Default(), false
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return m.Default(), false
	}
	return m.match(tags...)
}

// Match resolves a single tag such as a cookie or query value.
func (m *Matcher) Match(value string) (lang string, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > 35 {
		return m.Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return m.Default(), false
	}
	return m.match(tag)
}

func (m *Matcher) match(tags ...language.Tag) (string, bool) {
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return m.Default(), false
	}
	return m.supported[idx], true
}

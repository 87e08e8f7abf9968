// Package i18n resolves message keys into Arabic or English text.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Supported languages
const (
	Arabic  = "ar"
	English = "en"
)

// Translator resolves message keys for a language
type Translator interface {
	T(lang, key string, args ...interface{}) string
	Label(lang, namespace, value string) string
	Match(acceptLanguage string) string
}

// Catalog is an in-memory Translator
type Catalog struct {
	fallback  string
	supported []string
	matcher   language.Matcher
	messages  map[string]map[string]string
}

// New builds the catalog with defaultLang used when nothing better matches
func New(defaultLang string) *Catalog {
	if defaultLang != English {
		defaultLang = Arabic
	}
	supported := []string{defaultLang}
	if defaultLang == Arabic {
		supported = append(supported, English)
	} else {
		supported = append(supported, Arabic)
	}

	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = language.Make(s)
	}

	return &Catalog{
		fallback:  defaultLang,
		supported: supported,
		matcher:   language.NewMatcher(tags),
		messages: map[string]map[string]string{
			Arabic:  arabic,
			English: english,
		},
	}
}

// Match picks the best supported language for an Accept-Language header
func (c *Catalog) Match(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.supported[idx]
}

// T returns the message for key, falling back to the default language and then the key itself
func (c *Catalog) T(lang, key string, args ...interface{}) string {
	msg, ok := c.messages[lang][key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
	}
	if !ok {
		msg, ok = c.messages[English][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Label translates an enum value within a namespace, e.g. Label(lang, "service_type", "polish")
func (c *Catalog) Label(lang, namespace, value string) string {
	key := "label." + namespace + "." + value
	if out := c.T(lang, key); out != key {
		return out
	}
	return value
}

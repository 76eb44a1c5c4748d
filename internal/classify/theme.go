// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"regexp"
	"strings"
)

// Theme is the subject of a question. Subtheme may be empty.
type Theme struct {
	Name     string
	Subtheme string
}

var themeLabelPattern = regexp.MustCompile(`(?im)^[ \t]*(?:tema|assunto|mat[ée]ria|conte[úu]do|t[óo]pico)[ \t]*:[ \t]*(.*?)[ \t]*$`)

// themeSeparators are tried in order; the first one present in the label
// value is used to split it.
var themeSeparators = []struct {
	sep    string
	rejoin string
}{
	{sep: "/", rejoin: " / "},
	{sep: " - ", rejoin: " - "},
	{sep: ":", rejoin: ": "},
}

const themeFallbackLines = 5

type compiledThemeRule struct {
	theme    Theme
	keywords []string
}

// ThemeClassifier extracts a theme from explicit label lines, falling back
// to a keyword table matched against the first lines of a block.
type ThemeClassifier struct {
	rules        []compiledThemeRule
	defaultTheme string
}

// NewThemeClassifier creates a ThemeClassifier from the theme rules of t.
func NewThemeClassifier(t *Taxonomy) *ThemeClassifier {
	c := &ThemeClassifier{defaultTheme: t.DefaultTheme}
	if c.defaultTheme == "" {
		c.defaultTheme = DefaultThemeName
	}
	for _, r := range t.Themes {
		c.rules = append(c.rules, compiledThemeRule{
			theme:    Theme{Name: r.Theme, Subtheme: r.Subtheme},
			keywords: foldAll(r.Keywords),
		})
	}
	return c
}

// Classify returns the labeled theme of block if present, otherwise the
// first keyword rule matching its first five lines, otherwise the default.
func (c *ThemeClassifier) Classify(block string) Theme {
	if th, ok := c.FromLabel(block); ok {
		return th
	}
	if th, ok := c.FromKeywords(block); ok {
		return th
	}
	return c.Default()
}

// Default returns the theme used when nothing matches.
func (c *ThemeClassifier) Default() Theme {
	return Theme{Name: c.defaultTheme}
}

// FromLabel looks for the first TEMA:/ASSUNTO:/MATÉRIA:/CONTEÚDO:/TÓPICO:
// line in block.
func (c *ThemeClassifier) FromLabel(block string) (Theme, bool) {
	m := themeLabelPattern.FindStringSubmatch(block)
	if m == nil {
		return Theme{}, false
	}
	return SplitTheme(m[1])
}

// FromKeywords matches the keyword table against the first five lines of block.
func (c *ThemeClassifier) FromKeywords(block string) (Theme, bool) {
	lines := strings.SplitN(block, "\n", themeFallbackLines+1)
	if len(lines) > themeFallbackLines {
		lines = lines[:themeFallbackLines]
	}
	text := fold(strings.Join(lines, "\n"))
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.theme, true
			}
		}
	}
	return Theme{}, false
}

// SplitTheme splits a label value into theme and subtheme. The value is
// split on "/", else " - ", else ":"; a subtheme is reported only when at
// least two non-empty segments result.
func SplitTheme(value string) (Theme, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Theme{}, false
	}
	for _, s := range themeSeparators {
		if !strings.Contains(value, s.sep) {
			continue
		}
		var parts []string
		for _, p := range strings.Split(value, s.sep) {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		switch len(parts) {
		case 0:
			return Theme{}, false
		case 1:
			return Theme{Name: parts[0]}, true
		default:
			return Theme{Name: parts[0], Subtheme: strings.Join(parts[1:], s.rejoin)}, true
		}
	}
	return Theme{Name: value}, true
}

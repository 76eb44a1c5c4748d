// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const maxFileNameRunes = 255

var spaceRun = regexp.MustCompile(` {2,}`)

// Normalize canonicalizes raw document text: it is composed to NFC, line
// endings become "\n", tabs and non-breaking spaces become a single space,
// other control characters are dropped, and each line has its space runs
// collapsed and its ends trimmed.
func Normalize(text string) string {
	// PDF converters often emit decomposed accents ("A" + U+0303).
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t', r == '\u00a0', r == '\u202f', r == '\u2007':
			return ' '
		case r == '\ufeff', unicode.IsControl(r):
			return -1
		}
		return r
	}, text)

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.Trim(spaceRun.ReplaceAllString(l, " "), " ")
	}
	return strings.Join(lines, "\n")
}

// SanitizeFileName keeps letters, digits, spaces, dashes and dots, and
// truncates the result to 255 characters.
func SanitizeFileName(name string) string {
	var sb strings.Builder
	n := 0
	for _, r := range name {
		if n == maxFileNameRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '.' {
			sb.WriteRune(r)
			n++
		}
	}
	return strings.TrimSpace(sb.String())
}

// collapseSpace joins all whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// headRunes returns at most n runes of s.
func headRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	boardScanRunes = 5000
	yearScanRunes  = 3000
)

var yearPattern = regexp.MustCompile(`(?:^|\D)(20[0-2]\d)(?:\D|$)`)

// ExamMetadata is the document-level exam board and reference year.
// Year is zero when absent.
type ExamMetadata struct {
	Board string
	Year  int
}

type compiledOverride struct {
	match string
	board string
}

// MetadataDetector infers exam board and year from a file name and the
// head of the document.
type MetadataDetector struct {
	boards    []string
	folded    []string
	overrides []compiledOverride
}

// NewMetadataDetector creates a MetadataDetector from the boards and
// overrides of t.
func NewMetadataDetector(t *Taxonomy) *MetadataDetector {
	d := &MetadataDetector{}
	for _, b := range t.Boards {
		d.boards = append(d.boards, b)
		d.folded = append(d.folded, fold(b))
	}
	for _, o := range t.BoardOverrides {
		d.overrides = append(d.overrides, compiledOverride{match: fold(o.Match), board: o.Board})
	}
	return d
}

// Detect returns both board and year.
func (d *MetadataDetector) Detect(fileName, text string) ExamMetadata {
	return ExamMetadata{
		Board: d.DetectBoard(fileName, text),
		Year:  DetectYear(fileName, text),
	}
}

// DetectBoard matches known board names against the file name and the
// first 5000 characters of text. The first listed board found wins; when
// none is found at most one override rule applies.
func (d *MetadataDetector) DetectBoard(fileName, text string) string {
	hay := fold(fileName + " " + head(text, boardScanRunes))
	for i, b := range d.folded {
		if strings.Contains(hay, b) {
			return d.boards[i]
		}
	}
	for _, o := range d.overrides {
		if strings.Contains(hay, o.match) {
			return o.board
		}
	}
	return Unidentified
}

// DetectYear returns the first four digit year in 2000..2029 found in the
// file name or the first 3000 characters of text, or zero.
func DetectYear(fileName, text string) int {
	m := yearPattern.FindStringSubmatch(fileName + " " + head(text, yearScanRunes))
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

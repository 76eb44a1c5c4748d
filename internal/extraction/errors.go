// SPDX-License-Identifier: Apache-2.0

package extraction

import "errors"

var (
	// ErrTextTooShort is returned when the document text is below the minimum length.
	ErrTextTooShort = errors.New("text below minimum length")
	// ErrTextTooLong is returned when the document text exceeds the maximum length.
	ErrTextTooLong = errors.New("text above maximum length")
	// ErrNoValidQuestions is returned when no question survives extraction and filtering.
	ErrNoValidQuestions = errors.New("no valid questions found")
)

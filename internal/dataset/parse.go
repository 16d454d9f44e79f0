// Package dataset reads and writes the plain-text variant and round formats.
//
// Variants are one per line as "ID, n1 n2 n3 n4"; lines without a comma are
// skipped. Rounds are one per line as comma-separated integers. Parsing never
// commits partially: a bad token fails the whole source.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spboyer/comborank/internal/models"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

const utf8BOM = "\uFEFF"

// ParseError reports a failure to parse one input source.
type ParseError struct {
	Kind   string // "variants" or "rounds"
	Source string
	Line   int // 1-based, 0 when the failure is not tied to a line
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s from %s: line %d: %v", e.Kind, e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s from %s: %v", e.Kind, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseVariants reads variants from r. source names the input in errors.
func ParseVariants(r io.Reader, source string) ([]models.Variant, error) {
	var variants []models.Variant
	err := scanLines(r, func(lineNo int, line string) error {
		id, rest, ok := strings.Cut(line, ",")
		if !ok {
			return nil
		}
		numbers, err := parseNumbers(strings.Fields(rest))
		if err != nil {
			return err
		}
		variants = append(variants, models.Variant{ID: strings.TrimSpace(id), Numbers: numbers})
		return nil
	})
	if err != nil {
		return nil, wrapParseError("variants", source, err)
	}
	return variants, nil
}

// ParseRounds reads rounds from r. source names the input in errors.
func ParseRounds(r io.Reader, source string) ([]models.Round, error) {
	var rounds []models.Round
	err := scanLines(r, func(lineNo int, line string) error {
		var tokens []string
		for _, tok := range strings.Split(line, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		numbers, err := parseNumbers(tokens)
		if err != nil {
			return err
		}
		rounds = append(rounds, models.Round(numbers))
		return nil
	})
	if err != nil {
		return nil, wrapParseError("rounds", source, err)
	}
	return rounds, nil
}

// ParseVariantsString is ParseVariants over manually entered text.
func ParseVariantsString(text, source string) ([]models.Variant, error) {
	return ParseVariants(strings.NewReader(text), source)
}

// ParseRoundsString is ParseRounds over manually entered text.
func ParseRoundsString(text, source string) ([]models.Round, error) {
	return ParseRounds(strings.NewReader(text), source)
}

// lineError ties a parse failure to a line number.
type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string { return e.err.Error() }

// scanLines calls fn for every trimmed, non-blank line of r.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return &lineError{line: lineNo, err: err}
		}
	}
	return scanner.Err()
}

func parseNumbers(tokens []string) ([]int, error) {
	numbers := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", tok)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func wrapParseError(kind, source string, err error) error {
	pe := &ParseError{Kind: kind, Source: source, Err: err}
	if le, ok := err.(*lineError); ok {
		pe.Line = le.line
		pe.Err = le.err
	}
	return pe
}

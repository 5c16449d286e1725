// Package scenario - CSV loader.
//
// Parse reads the documented layout and rejects every deviation with an
// ErrMalformed-wrapped sentinel. Nothing is silently corrected: extra fields,
// missing rows, short rows and aggregates below the budget floor all fail.
package scenario

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	fieldsPerLine = 3

	// maxPrealloc caps the capacity hint taken from the header; the declared
	// count is untrusted until the rows have been counted.
	maxPrealloc = 1 << 16
)

// Load opens path and parses it with Parse.
// File-system errors are returned wrapped but do not match ErrMalformed.
func Load(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: open %q: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: load %q: %w", path, err)
	}

	return s, nil
}

// Parse reads a scenario from r.
//
// Implementation:
//   - Stage 1: read and validate the header (3 non-negative integers).
//   - Stage 2: read every object row (3 non-negative integers each).
//   - Stage 3: check the declared count, then the aggregate budget floor.
//
// Complexity: O(N) time and memory in the rows actually present.
func Parse(r io.Reader) (Scenario, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field counts are validated below with our own sentinels
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	// Stage 1: header.
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Scenario{}, malformed(ErrNoHeader)
	}
	if err != nil {
		return Scenario{}, malformed(err)
	}
	if len(header) != fieldsPerLine {
		return Scenario{}, malformed(fmt.Errorf("line 1: %w (got %d)", ErrHeaderFields, len(header)))
	}
	var head [fieldsPerLine]int32
	if err = parseFields(header, head[:], 1); err != nil {
		return Scenario{}, err
	}
	declared, maxWeight, maxSize := int(head[0]), head[1], head[2]

	// Stage 2: object rows.
	hint := min(declared, maxPrealloc)
	s := Scenario{
		Weights:   make([]int32, 0, hint),
		Sizes:     make([]int32, 0, hint),
		Costs:     make([]int32, 0, hint),
		MaxWeight: maxWeight,
		MaxSize:   maxSize,
	}
	var (
		rec  []string
		row  [fieldsPerLine]int32
		line int
	)
	for {
		rec, err = cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Scenario{}, malformed(err)
		}
		line, _ = cr.FieldPos(0)
		if len(rec) != fieldsPerLine {
			return Scenario{}, malformed(fmt.Errorf("line %d: %w (got %d)", line, ErrRowFields, len(rec)))
		}
		if err = parseFields(rec, row[:], line); err != nil {
			return Scenario{}, err
		}
		s.Weights = append(s.Weights, row[0])
		s.Sizes = append(s.Sizes, row[1])
		s.Costs = append(s.Costs, row[2])
	}

	// Stage 3: structural and sanity checks.
	if declared == 0 {
		return Scenario{}, malformed(ErrNoObjects)
	}
	if len(s.Weights) != declared {
		return Scenario{}, malformed(&CountError{Declared: declared, Actual: len(s.Weights)})
	}
	s.NumberOfObjects = declared
	if err = s.CheckBudgetFloor(); err != nil {
		return Scenario{}, err
	}

	return s, nil
}

// parseFields converts rec into dst, rejecting non-integers and negatives.
func parseFields(rec []string, dst []int32, line int) error {
	for i, field := range rec {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 32)
		if err != nil {
			return malformed(fmt.Errorf("line %d field %d %q: %w", line, i+1, field, ErrNotANumber))
		}
		if v < 0 {
			return malformed(fmt.Errorf("line %d field %d: %w", line, i+1, ErrNegativeValue))
		}
		dst[i] = int32(v)
	}

	return nil
}

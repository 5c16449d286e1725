// Package scenario - random scenario generation and CSV writer.
//
// Generate draws per-object values from uniform ranges scaled by the budgets
// so that a random half of the catalogue roughly exhausts them, and redraws
// until the aggregate floor (Σ > 2·budget) holds.
package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
)

const (
	// DefaultMaxAttempts bounds the number of redraws in Generate.
	DefaultMaxAttempts = 100

	// MaxGenerateObjects bounds GenerateParams.NumberOfObjects.
	MaxGenerateObjects = 1 << 24
)

var (
	// ErrGenerateParams indicates parameters for which no value range exists
	// (fewer than 2 or more than MaxGenerateObjects objects, or a budget too
	// small for its range).
	ErrGenerateParams = errors.New("scenario: invalid generate parameters")

	// ErrGenerateExhausted indicates that MaxAttempts draws all failed the budget floor.
	ErrGenerateExhausted = errors.New("scenario: no draw satisfied the budget floor")
)

// GenerateParams configures Generate.
type GenerateParams struct {
	NumberOfObjects int32 // N, must be in [2, MaxGenerateObjects]
	MaxWeight       int32 // weight budget, must be > 0
	MaxSize         int32 // size budget, must be > 0
	MaxAttempts     int   // redraw bound; 0 ⇒ DefaultMaxAttempts
}

// Generate returns a random scenario for p using rng.
//
// Value ranges (half-open):
//   - weight ∈ [1, 10·MaxWeight/N)
//   - size   ∈ [1, 10·MaxSize/N)
//   - cost   ∈ [1, N)
//
// Upper bounds are clipped to math.MaxInt32. Each range must contain at least
// one value, otherwise ErrGenerateParams is returned.
//
// Complexity: O(N·attempts).
func Generate(rng *rand.Rand, p GenerateParams) (Scenario, error) {
	if rng == nil {
		return Scenario{}, fmt.Errorf("%w: nil rng", ErrGenerateParams)
	}
	if p.NumberOfObjects < 2 || p.NumberOfObjects > MaxGenerateObjects || p.MaxWeight <= 0 || p.MaxSize <= 0 {
		return Scenario{}, fmt.Errorf("%w: objects=%d max_weight=%d max_size=%d",
			ErrGenerateParams, p.NumberOfObjects, p.MaxWeight, p.MaxSize)
	}
	n := int64(p.NumberOfObjects)
	weightHi := upperBound(p.MaxWeight, n)
	sizeHi := upperBound(p.MaxSize, n)
	if weightHi <= 1 || sizeHi <= 1 {
		return Scenario{}, fmt.Errorf("%w: budgets too small for %d objects", ErrGenerateParams, n)
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	s := Scenario{
		Weights:         make([]int32, n),
		Sizes:           make([]int32, n),
		Costs:           make([]int32, n),
		MaxWeight:       p.MaxWeight,
		MaxSize:         p.MaxSize,
		NumberOfObjects: int(n),
	}
	var i int64
	for a := 0; a < attempts; a++ {
		for i = 0; i < n; i++ {
			s.Weights[i] = int32(1 + rng.Int63n(weightHi-1))
			s.Sizes[i] = int32(1 + rng.Int63n(sizeHi-1))
			s.Costs[i] = int32(1 + rng.Int63n(n-1))
		}
		if s.CheckBudgetFloor() == nil {
			return s, nil
		}
	}

	return Scenario{}, fmt.Errorf("%w after %d attempts", ErrGenerateExhausted, attempts)
}

// upperBound returns min(10·budget/n, MaxInt32) as the exclusive range end.
func upperBound(budget int32, n int64) int64 {
	hi := 10 * int64(budget) / n
	if hi > math.MaxInt32 {
		hi = math.MaxInt32
	}

	return hi
}

// Write encodes s in the documented CSV layout.
func Write(w io.Writer, s Scenario) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d,%d,%d\n", s.NumberOfObjects, s.MaxWeight, s.MaxSize); err != nil {
		return fmt.Errorf("scenario: write header: %w", err)
	}
	for i := 0; i < s.NumberOfObjects; i++ {
		if _, err := fmt.Fprintf(bw, "%d,%d,%d\n", s.Weights[i], s.Sizes[i], s.Costs[i]); err != nil {
			return fmt.Errorf("scenario: write object %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("scenario: flush: %w", err)
	}

	return nil
}

// Save writes s to path, creating or truncating the file.
func Save(path string, s Scenario) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scenario: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("scenario: close %q: %w", path, cerr)
		}
	}()

	return Write(f, s)
}

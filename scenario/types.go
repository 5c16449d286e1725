// Package scenario defines the immutable knapsack problem instance consumed by
// the evolution engine, together with its CSV loader and generator.
//
// A Scenario holds a fixed catalogue of N objects, each with a weight, a size
// and a cost, plus two global budgets (MaxWeight, MaxSize). The on-disk layout
// is a plain CSV file:
//
//	number_of_objects,max_weight,max_size
//	weight,size,cost      (exactly number_of_objects lines)
//
// Errors (sentinel):
//
//	– ErrMalformed            every load-time rejection matches it via errors.Is.
//	– ErrNoHeader             the input is empty.
//	– ErrHeaderFields         header field count other than 3.
//	– ErrRowFields            object row field count other than 3.
//	– ErrNotANumber           a field is not a 32-bit integer.
//	– ErrNegativeValue        a weight, size, cost or budget is negative.
//	– ErrNoObjects            number_of_objects is 0.
//	– ErrObjectCount          declared object count differs from the row count (*CountError).
//	– ErrTotalWeightTooSmall  Σweights <= 2·max_weight (*BudgetError).
//	– ErrTotalSizeTooSmall    Σsizes <= 2·max_size (*BudgetError).
//
// Use New to build a scenario in code; it enforces the shape invariants only.
// The aggregate-budget floor is a sanity rule for files and generated data, so
// Parse and Generate apply it and New does not.
package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the scenario package.
var (
	// ErrMalformed is matched by every rejection of scenario input.
	ErrMalformed = errors.New("scenario: malformed input")

	// ErrNoHeader indicates that the input contains no header line.
	ErrNoHeader = errors.New("scenario: missing header")

	// ErrHeaderFields indicates a header with a field count other than 3.
	ErrHeaderFields = errors.New("scenario: header must have exactly 3 fields")

	// ErrRowFields indicates an object row with a field count other than 3.
	ErrRowFields = errors.New("scenario: object row must have exactly 3 fields")

	// ErrNotANumber indicates a field that does not parse as a 32-bit integer.
	ErrNotANumber = errors.New("scenario: field is not an integer")

	// ErrNegativeValue indicates a negative weight, size, cost or budget.
	ErrNegativeValue = errors.New("scenario: negative value")

	// ErrNoObjects indicates an empty object catalogue.
	ErrNoObjects = errors.New("scenario: number of objects must be > 0")

	// ErrLengthMismatch indicates per-object vectors of different lengths.
	ErrLengthMismatch = errors.New("scenario: weights, sizes and costs differ in length")

	// ErrObjectCount indicates that the declared object count does not match the rows.
	ErrObjectCount = errors.New("scenario: declared object count does not match rows")

	// ErrTotalWeightTooSmall indicates Σweights <= 2·max_weight.
	ErrTotalWeightTooSmall = errors.New("scenario: total weight too small")

	// ErrTotalSizeTooSmall indicates Σsizes <= 2·max_size.
	ErrTotalSizeTooSmall = errors.New("scenario: total size too small")
)

// CountError reports a declared/actual object count mismatch.
type CountError struct {
	Declared int // number_of_objects from the header
	Actual   int // object rows found
}

// Error implements error.
func (e *CountError) Error() string {
	return fmt.Sprintf("%v: declared %d, actual %d", ErrObjectCount, e.Declared, e.Actual)
}

// Unwrap lets errors.Is match ErrObjectCount.
func (e *CountError) Unwrap() error { return ErrObjectCount }

// BudgetError reports an aggregate weight or size that does not exceed
// twice the corresponding budget.
type BudgetError struct {
	Axis    string // "weight" or "size"
	Minimal int64  // 2·budget; the total must be strictly greater
	Total   int64  // observed Σ over all objects
}

// Error implements error.
func (e *BudgetError) Error() string {
	return fmt.Sprintf("scenario: total %s %d must exceed %d", e.Axis, e.Total, e.Minimal)
}

// Unwrap lets errors.Is match ErrTotalWeightTooSmall or ErrTotalSizeTooSmall.
func (e *BudgetError) Unwrap() error {
	if e.Axis == axisSize {
		return ErrTotalSizeTooSmall
	}

	return ErrTotalWeightTooSmall
}

const (
	axisWeight = "weight"
	axisSize   = "size"
)

// malformed tags err as ErrMalformed while keeping the specific sentinel reachable.
func malformed(err error) error {
	if errors.Is(err, ErrMalformed) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrMalformed, err)
}

// Scenario is one knapsack problem instance.
//
// Invariants (enforced by New and Parse):
//   - len(Weights) == len(Sizes) == len(Costs) == NumberOfObjects > 0.
//   - every value and both budgets are non-negative.
//
// A Scenario is read-only once built; the engine keeps its own copy.
type Scenario struct {
	Weights         []int32 // per-object weight
	Sizes           []int32 // per-object size
	Costs           []int32 // per-object cost (the value being maximised)
	MaxWeight       int32   // weight budget
	MaxSize         int32   // size budget
	NumberOfObjects int     // N
}

// New validates the per-object vectors and budgets and returns a Scenario
// owning private copies of them.
//
// Errors: ErrNoObjects, ErrLengthMismatch, ErrNegativeValue, all wrapped in ErrMalformed.
//
// Complexity: O(N).
func New(weights, sizes, costs []int32, maxWeight, maxSize int32) (Scenario, error) {
	n := len(weights)
	if n == 0 {
		return Scenario{}, malformed(ErrNoObjects)
	}
	if len(sizes) != n || len(costs) != n {
		return Scenario{}, malformed(ErrLengthMismatch)
	}
	if maxWeight < 0 || maxSize < 0 {
		return Scenario{}, malformed(fmt.Errorf("budget: %w", ErrNegativeValue))
	}
	for i := 0; i < n; i++ {
		if weights[i] < 0 || sizes[i] < 0 || costs[i] < 0 {
			return Scenario{}, malformed(fmt.Errorf("object %d: %w", i, ErrNegativeValue))
		}
	}

	return Scenario{
		Weights:         append([]int32(nil), weights...),
		Sizes:           append([]int32(nil), sizes...),
		Costs:           append([]int32(nil), costs...),
		MaxWeight:       maxWeight,
		MaxSize:         maxSize,
		NumberOfObjects: n,
	}, nil
}

// Clone returns a deep copy of s.
func (s Scenario) Clone() Scenario {
	s.Weights = append([]int32(nil), s.Weights...)
	s.Sizes = append([]int32(nil), s.Sizes...)
	s.Costs = append([]int32(nil), s.Costs...)

	return s
}

// TotalWeight returns Σ weights.
func (s Scenario) TotalWeight() int64 { return sum(s.Weights) }

// TotalSize returns Σ sizes.
func (s Scenario) TotalSize() int64 { return sum(s.Sizes) }

// TotalCost returns Σ costs, an upper bound on any fitness.
func (s Scenario) TotalCost() int64 { return sum(s.Costs) }

// CheckBudgetFloor verifies that both aggregates strictly exceed twice their
// budget, so the problem is non-trivially constrained.
// Returns a *BudgetError wrapped in ErrMalformed.
func (s Scenario) CheckBudgetFloor() error {
	if tw, floor := s.TotalWeight(), 2*int64(s.MaxWeight); tw <= floor {
		return malformed(&BudgetError{Axis: axisWeight, Minimal: floor, Total: tw})
	}
	if ts, floor := s.TotalSize(), 2*int64(s.MaxSize); ts <= floor {
		return malformed(&BudgetError{Axis: axisSize, Minimal: floor, Total: ts})
	}

	return nil
}

// Feasible reports whether the inclusion vector genes respects both budgets.
// genes must have length NumberOfObjects.
func (s Scenario) Feasible(genes []uint8) bool {
	var w, z int64
	for i, g := range genes {
		w += int64(g) * int64(s.Weights[i])
		z += int64(g) * int64(s.Sizes[i])
	}

	return w <= int64(s.MaxWeight) && z <= int64(s.MaxSize)
}

// String renders the scenario for print-scenario: a header, then one
// "i: weight,size,cost" line per object.
func (s Scenario) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scenario{objects=%d max_weight=%d max_size=%d total_weight=%d total_size=%d total_cost=%d}\n",
		s.NumberOfObjects, s.MaxWeight, s.MaxSize, s.TotalWeight(), s.TotalSize(), s.TotalCost())
	for i := 0; i < s.NumberOfObjects; i++ {
		fmt.Fprintf(&sb, "%d: %d,%d,%d\n", i, s.Weights[i], s.Sizes[i], s.Costs[i])
	}

	return sb.String()
}

func sum(v []int32) int64 {
	var acc int64
	for _, x := range v {
		acc += int64(x)
	}

	return acc
}

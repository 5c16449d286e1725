// SPDX-License-Identifier: MIT

package population

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors for configuration and inputs.
var (
	// ErrConfigInvalid is matched by every Config rejection.
	ErrConfigInvalid = errors.New("population: invalid config")

	// ErrScenarioShape indicates scenario vectors whose lengths differ from
	// NumberOfObjects, or NumberOfObjects <= 0.
	ErrScenarioShape = errors.New("population: scenario shape is inconsistent")

	// ErrPopulationTooLarge indicates that M·N does not fit in an int.
	ErrPopulationTooLarge = errors.New("population: population_size × number_of_objects overflows")
)

// Config holds the genetic-algorithm parameters. It is immutable once the
// engine is built.
//
// Constraints (validated by Validate):
//   - PopulationSize > 0
//   - 1 <= TournamentSize <= PopulationSize
//   - CrossoverProbability, MutationProbability ∈ [0, 1] (NaN rejected)
type Config struct {
	PopulationSize       int     `validate:"gt=0"`                          // M
	TournamentSize       int     `validate:"gte=1,ltefield=PopulationSize"` // K
	CrossoverProbability float64 `validate:"gte=0,lte=1"`                   // p_c
	MutationProbability  float64 `validate:"gte=0,lte=1"`                   // p_m
}

// validate is safe for concurrent use; it only caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks c and returns an ErrConfigInvalid-wrapped error naming
// every violated field, or nil.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(msgs, "; "))
}

// describe renders one validator failure in plain words.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be > %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s must be <= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s%s (got %v)", fe.Field(), fe.Tag(), param(fe.Param()), fe.Value())
	}
}

func param(p string) string {
	if p == "" {
		return ""
	}

	return "=" + p
}

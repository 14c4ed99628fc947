// Package rating implements the per-participant rating aggregate: the running
// sum and count of received order ratings, displayed as a one-decimal mean.
package rating

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

const (
	// MinValue is the lowest rating a customer can submit (half a star).
	MinValue = 0.5

	// MaxValue is the highest rating a customer can submit (five stars).
	MaxValue = 5.0
)

// ErrAggregateIsNotConstructed is returned when an Aggregate was not created
// through NewAggregate or RestoreAggregate.
var ErrAggregateIsNotConstructed = errors.New("Aggregate must be created via NewAggregate or RestoreAggregate constructor")

// Aggregate accumulates rating submissions for one participant. Submissions
// are append-only: past ratings are never edited or deleted. Applications of
// concurrent submissions are commutative, so no ordering is required between
// them.
//
// The displayed rating is the mean of all submissions rounded to one decimal
// place, or 0 while no submissions exist.
type Aggregate struct {
	sum           float64
	count         int
	isConstructed bool
}

// NewAggregate creates an empty rating aggregate (no submissions yet).
func NewAggregate() Aggregate {
	return Aggregate{isConstructed: true}
}

// RestoreAggregate rebuilds an aggregate from the remote {rating, count}
// pair. The sum is reconstructed as mean*count; subsequent submissions keep
// accumulating on top of it.
func RestoreAggregate(mean float64, count int) (Aggregate, error) {
	if count < 0 {
		return Aggregate{}, errs.NewValueIsInvalidErrorWithCause("count is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", count))
	}
	if mean < 0 {
		return Aggregate{}, errs.NewValueIsInvalidErrorWithCause("rating is invalid",
			fmt.Errorf("%v is not greater than or equal to 0", mean))
	}

	return Aggregate{
		sum:           mean * float64(count),
		count:         count,
		isConstructed: true,
	}, nil
}

// ValidateValue checks that a rating submission lies within the allowed
// half-star range.
func ValidateValue(value float64) error {
	if value < MinValue || value > MaxValue {
		return errs.NewValueIsOutOfRangeError("rating", value, MinValue, MaxValue)
	}
	return nil
}

// Validate ensures the Aggregate was created through a constructor.
func (a Aggregate) Validate() error {
	if !a.isConstructed {
		return ErrAggregateIsNotConstructed
	}
	return nil
}

// Add records one rating submission and returns the updated aggregate.
// Aggregates are value objects; the receiver is not modified.
func (a Aggregate) Add(value float64) (Aggregate, error) {
	if err := a.Validate(); err != nil {
		return Aggregate{}, err
	}
	if err := ValidateValue(value); err != nil {
		return Aggregate{}, err
	}

	return Aggregate{
		sum:           a.sum + value,
		count:         a.count + 1,
		isConstructed: true,
	}, nil
}

// Count returns the number of recorded submissions.
func (a Aggregate) Count() int {
	return a.count
}

// Mean returns the mean of all submissions rounded to one decimal place,
// or 0 when there are no submissions.
func (a Aggregate) Mean() float64 {
	if a.count == 0 {
		return 0
	}
	return math.Round(a.sum/float64(a.count)*10) / 10
}

package services

import (
	"fmt"
	"strconv"
)

// FallbackPolicy holds the prescription defaults applied when neither a set
// row nor its exercise carries an explicit value. One value, passed in,
// instead of literals scattered through the view builder.
type FallbackPolicy struct {
	DefaultReps string
	DefaultRest string
}

func DefaultFallbackPolicy() FallbackPolicy {
	return FallbackPolicy{
		DefaultReps: "10",
		DefaultRest: "",
	}
}

// RepsFallback resolves the display reps for an exercise-level prescription:
// explicit rep-range string, then a computed range from min/max, then the
// policy default.
func (p FallbackPolicy) RepsFallback(repRange string, repsMin, repsMax *int) string {
	if repRange != "" {
		return repRange
	}
	if repsMin != nil && repsMax != nil && *repsMin != *repsMax {
		return fmt.Sprintf("%d-%d", *repsMin, *repsMax)
	}
	if repsMin != nil {
		return strconv.Itoa(*repsMin)
	}
	return p.DefaultReps
}

// RestFallback resolves display rest from an optional seconds value,
// falling back to the catalog default and then the policy default.
func (p FallbackPolicy) RestFallback(restSeconds *int, catalogDefault int) string {
	if restSeconds != nil {
		return strconv.Itoa(*restSeconds)
	}
	if catalogDefault > 0 {
		return strconv.Itoa(catalogDefault)
	}
	return p.DefaultRest
}

package types

import "fmt"

// Rating is a categorical risk rating, used for the quantitative rating,
// qualitative factor ratings, and the rating override slots.
// The zero value means unset.
type Rating string

const (
	RatingUnset  Rating = ""
	RatingLow    Rating = "LOW"
	RatingMedium Rating = "MEDIUM"
	RatingHigh   Rating = "HIGH"
)

// AllRatings returns all settable ratings
func AllRatings() []Rating {
	return []Rating{
		RatingHigh,
		RatingMedium,
		RatingLow,
	}
}

// IsSet reports whether the rating holds a value
func (r Rating) IsSet() bool {
	return r != RatingUnset
}

// IsValid checks if the rating is one of the known values. Unset is valid.
func (r Rating) IsValid() bool {
	switch r {
	case RatingUnset, RatingLow, RatingMedium, RatingHigh:
		return true
	default:
		return false
	}
}

// Score returns the numeric weight of the rating used by the qualitative
// scorer: HIGH=3, MEDIUM=2, LOW=1. Unset ratings score 0 and must be
// excluded by the caller.
func (r Rating) Score() float64 {
	switch r {
	case RatingHigh:
		return 3
	case RatingMedium:
		return 2
	case RatingLow:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the rating
func (r Rating) String() string {
	return string(r)
}

// ParseRating parses a string into a Rating. An empty string parses to
// RatingUnset.
func ParseRating(s string) (Rating, error) {
	rating := Rating(s)
	if !rating.IsValid() {
		return RatingUnset, fmt.Errorf("invalid rating: %s", s)
	}
	return rating, nil
}

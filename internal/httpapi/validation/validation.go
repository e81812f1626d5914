package validation

import (
	"fmt"
	"time"
	"unicode"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations collects field-level failures so an entity can be validated as
// a whole and report every problem at once.
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	return fmt.Sprintf("%s: %s", v[0].Field, v[0].Message)
}

func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Usernames that collide with route segments are forbidden; "/users/me" is
// the self-service endpoint.
const reservedUsername = "me"

// minTitleYear is the earliest release year a title may carry.
const minTitleYear = 1900

// ValidateUsername checks a display username against the reserved-word
// blocklist and the allowed character set (letters, digits, @/./+/-/_).
func ValidateUsername(username string) Violations {
	var v Violations
	if username == reservedUsername {
		v.Add("username", "this username is reserved")
		return v
	}
	if len(username) > 150 {
		v.Add("username", "must be at most 150 characters")
	}
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '@', '.', '+', '-', '_':
			continue
		}
		v.Add("username", "may contain only letters, digits and @/./+/-/_")
		break
	}
	return v
}

// ValidateYear checks a title release year: no earlier than 1900 and no
// later than the current calendar year.
func ValidateYear(year int) Violations {
	return validateYearAt(year, time.Now())
}

func validateYearAt(year int, now time.Time) Violations {
	var v Violations
	if year < minTitleYear || year > now.Year() {
		v.Add("year", fmt.Sprintf("%d is not a valid year", year))
	}
	return v
}

// ValidateScore checks a review score is within [1, 10].
func ValidateScore(score int) Violations {
	var v Violations
	if score < 1 || score > 10 {
		v.Add("score", "must be between 1 and 10")
	}
	return v
}

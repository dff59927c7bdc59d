package reports

import (
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"max.ks1230/finances-ai/internal/model/customerr"
)

const (
	minYear = 1900
	maxYear = 9999
)

// ParseMonth accepts "01".."12" and the one-digit forms "1".."9".
func ParseMonth(raw string) (time.Month, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == 0 || len(raw) > 2 || !isDigits(raw) {
		return 0, &customerr.ValidationError{Field: "month", Reason: "must be a number between 01 and 12"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < int(time.January) || n > int(time.December) {
		return 0, &customerr.ValidationError{Field: "month", Reason: "must be between 01 and 12"}
	}
	return time.Month(n), nil
}

func ValidateYear(year int) error {
	if year < minYear || year > maxYear {
		return &customerr.ValidationError{Field: "year", Reason: "must be a four digit year"}
	}
	return nil
}

// MonthRange returns [first day of month, first day of next month) in UTC.
func MonthRange(year int, month time.Month) (from, to time.Time) {
	from = now.With(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)).BeginningOfMonth()
	return from, from.AddDate(0, 1, 0)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

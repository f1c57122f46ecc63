package render

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// FormatError reports a day date that is not a valid YYYY-MM-DD calendar date.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// FormatDate turns "2025-01-01" into "1/1/2025". The date is read as local
// midnight so the calendar day never shifts.
func FormatDate(dateStr string) (string, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return "", &FormatError{Input: dateStr, Err: err}
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()), nil
}

package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

// YearParam reads the "year" query parameter, falling back to the clock's
// current year when it is absent.
func YearParam(r *http.Request, clock Clock) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return clock.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		return 0, fmt.Errorf("year must be a positive number, got %q", raw)
	}
	return year, nil
}

// IntParam reads a required integer query parameter within [min, max].
func IntParam(r *http.Request, name string, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return 0, fmt.Errorf("%s must be a number between %d and %d, got %q", name, min, max, raw)
	}
	return value, nil
}

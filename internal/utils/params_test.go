package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearParam(t *testing.T) {
	clock := &MockClock{FixedNow: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)}

	year, err := YearParam(httptest.NewRequest("GET", "/x", nil), clock)
	assert.NoError(t, err)
	assert.Equal(t, 2025, year)

	year, err = YearParam(httptest.NewRequest("GET", "/x?year=2023", nil), clock)
	assert.NoError(t, err)
	assert.Equal(t, 2023, year)

	_, err = YearParam(httptest.NewRequest("GET", "/x?year=abc", nil), clock)
	assert.Error(t, err)
}

func TestIntParam(t *testing.T) {
	value, err := IntParam(httptest.NewRequest("GET", "/x?month=7", nil), "month", 1, 12)
	assert.NoError(t, err)
	assert.Equal(t, 7, value)

	_, err = IntParam(httptest.NewRequest("GET", "/x?month=13", nil), "month", 1, 12)
	assert.Error(t, err)

	_, err = IntParam(httptest.NewRequest("GET", "/x", nil), "month", 1, 12)
	assert.EqualError(t, err, "month is required")
}

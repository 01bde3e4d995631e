package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "Already normal", raw: "A001", expected: "A001"},
		{name: "Whitespace and case", raw: "  tnd  01 ", expected: "TND 01"},
		{name: "Spreadsheet float", raw: "1001.0", expected: "1001"},
		{name: "Float suffix on non numeric code is kept", raw: "A1.0", expected: "A1.0"},
		{name: "BOM", raw: "\ufeffK01", expected: "K01"},
		{name: "Empty", raw: "   ", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Code(tc.raw))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Ringan", Text(" Ringan "))
	assert.Equal(t, "", Text("NaN"))
	assert.Equal(t, "", Text("null"))
}

func TestDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	testCases := []struct {
		name      string
		raw       string
		expected  time.Time
		expectErr bool
	}{
		{name: "ISO date", raw: "2024-03-15", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, jakarta)},
		{name: "ISO datetime", raw: "2024-03-15 08:30:00", expected: time.Date(2024, 3, 15, 8, 30, 0, 0, jakarta)},
		{name: "Day first slash", raw: "05/03/2024", expected: time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta)},
		{name: "Day first dash", raw: "05-03-2024", expected: time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta)},
		{name: "Day first dash two digit year", raw: "05-03-24", expected: time.Date(2024, 3, 5, 0, 0, 0, 0, jakarta)},
		{name: "RFC3339 keeps its offset", raw: "2024-03-15T00:00:00Z", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Excel serial", raw: "45366", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, jakarta)},
		{name: "Garbage", raw: "kemarin", expectErr: true},
		{name: "Empty", raw: "", expectErr: true},
		{name: "Null marker", raw: "NaT", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Date(tc.raw, jakarta)
			if tc.expectErr {
				assert.False(t, ok)
				assert.Nil(t, DatePtr(tc.raw, jakarta))
			} else {
				assert.True(t, ok)
				assert.True(t, tc.expected.Equal(got), "expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"3", 3, true},
		{" 2.5 ", 2.5, true},
		{"2,5", 2.5, true},
		{"1,000.5", 0, false},
		{"tiga", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		v, ok := Number(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.expected, v, "raw %q", tc.raw)
	}
	assert.Nil(t, NumberPtr("x"))
	assert.Equal(t, 4.0, *NumberPtr("4"))
}

package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumberFR(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "zero", value: 0, want: "0,00"},
		{name: "simple", value: 35, want: "35,00"},
		{name: "decimals", value: 42.5, want: "42,50"},
		{name: "rounding", value: 19.999, want: "20,00"},
		{name: "thousands", value: 1234.56, want: "1 234,56"},
		{name: "millions", value: 1234567.89, want: "1 234 567,89"},
		{name: "negative", value: -1234.5, want: "-1 234,50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNumberFR(tt.value))
		})
	}
}

func TestFormatEuroOrDash(t *testing.T) {
	assert.Equal(t, "-", formatEuroOrDash(0))
	assert.Equal(t, "35,00 €", formatEuroOrDash(35))
	assert.Equal(t, "1 234,56 €", formatEuroOrDash(1234.56))
}

func TestFormatDatesFR(t *testing.T) {
	d := time.Date(2025, time.January, 6, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "06 janv. 2025", formatDateShortFR(d))
	assert.Equal(t, "6 janvier 2025", formatDateLongFR(d))
	assert.Equal(t, "06/01/2025 14:30", formatDateTimeFR(d))

	aug := time.Date(2025, time.August, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "15 août 2025", formatDateShortFR(aug))
}

package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatToken(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"whole tokens", 2_000_000, "2.000000"},
		{"fractional", 1_250_000, "1.250000"},
		{"sub-token", 42, "0.000042"},
		{"zero", 0, "0.000000"},
		{"negative", -1_500_000, "-1.500000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatToken(tt.amount))
		})
	}
}

func TestFormatUSD(t *testing.T) {
	// The rate is an explicit input; the same amount renders differently
	// at different rates.
	assert.Equal(t, "$3.00", FormatUSD(1_500_000, 2.0))
	assert.Equal(t, "$0.75", FormatUSD(1_500_000, 0.5))
	assert.Equal(t, "$0.00", FormatUSD(0, 2.0))
}

package pace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalc(t *testing.T) {
	assert.Equal(t, 300.0, Calc(1500, 5))
	assert.Equal(t, 0.0, Calc(1500, 0))
	assert.Equal(t, 0.0, Calc(0, 0))
	assert.Equal(t, 0.0, Calc(1500, -1))
	assert.InDelta(t, 333.333, Calc(1000, 3), 0.001)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00:00", 0},
		{"01:02:03", 3723},
		{"1:2:3", 3723},
		{" 00:25:00 ", 1500},
		{"30:00:00", 108000},
		{"0:90:00", 5400},
		{"100:00:01", 360001},
		{"25:00", 0},
		{"1:2:3:4", 0},
		{"", 0},
		{"aa:bb:cc", 0},
		{"1::3", 0},
		{"-1:00:00", 0},
		{"1.5:00:00", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDuration(tt.in), tt.in)
	}
}

func TestParseDurationLoose(t *testing.T) {
	assert.Equal(t, 3723, ParseDurationLoose("1:02:03"))
	assert.Equal(t, 1530, ParseDurationLoose("25:30"))
	assert.Equal(t, 90, ParseDurationLoose("90"))
	assert.Equal(t, 0, ParseDurationLoose("abc"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "00:25:00", FormatDuration(1500))
	assert.Equal(t, "01:02:03", FormatDuration(3723))
	assert.Equal(t, "27:46:40", FormatDuration(100000))
	assert.Equal(t, "100:00:01", FormatDuration(360001))
	assert.Equal(t, "00:00:00", FormatDuration(-5))
}

func TestDurationRoundTrip(t *testing.T) {
	for s := 0; s < 200000; s += 7 {
		assert.Equal(t, s, ParseDuration(FormatDuration(s)))
	}
	for _, s := range []int{59, 60, 3599, 3600, 86399, 86400, 359999, 360000, 9999999} {
		assert.Equal(t, s, ParseDuration(FormatDuration(s)))
	}
}

func TestFormatPace(t *testing.T) {
	assert.Equal(t, Placeholder, FormatPace(0))
	assert.Equal(t, Placeholder, FormatPace(-3))
	assert.Equal(t, Placeholder, FormatPace(math.NaN()))
	assert.Equal(t, Placeholder, FormatPace(math.Inf(1)))
	assert.Equal(t, "05:00", FormatPace(300))
	assert.Equal(t, "04:20", FormatPace(260))
	assert.Equal(t, "05:33", FormatPace(333.333))
	assert.Equal(t, "00:01", FormatPace(0.6))
}

func TestFormatPace_CarriesRoundedSeconds(t *testing.T) {
	assert.Equal(t, "13:00", FormatPace(779.6))
	assert.Equal(t, "13:00", FormatPace(779.5))
	assert.Equal(t, "12:59", FormatPace(779.4))
}

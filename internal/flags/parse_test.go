package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"Yes", true},
		{"on", true},
		{"1", true},
		{"-3", true},
		{"42abc", true},
		{"false", false},
		{"off", false},
		{"no", false},
		{"0", false},
		{"", false},
		{"enabled", false},
		{"  true  ", false},
		{" 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBool(tt.in))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"5", 5},
		{"  12", 12},
		{"-7", -7},
		{"+3", 3},
		{"10 npcs", 10},
		{"3.9", 3},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"99999999999", 2147483647},
		{"-99999999999", -2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt(tt.in))
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1", 1},
		{"0.5", 0.5},
		{".25", 0.25},
		{"2.", 2},
		{"-1.5", -1.5},
		{"1.5s", 1.5},
		{"1e2", 100},
		{"1e", 1},
		{"1e+", 1},
		{"abc", 0},
		{"", 0},
		{".", 0},
		{"nan", 0},
		{"inf", 0},
		{"1e999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseFloat(tt.in), 1e-9)
		})
	}
}

package errors

import (
	"strings"
	"testing"
)

func TestValidateNetworkName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "station-12", false},
		{"WithSpaces", "east junction feeders", false},
		{"Empty", "", true},
		{"TooLong", strings.Repeat("a", 129), true},
		{"Traversal", "../secrets", true},
		{"Slash", "a/b", true},
		{"Backslash", `a\b`, true},
		{"ControlChar", "bad\x01name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNetworkName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNetworkName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("error should carry INVALID_NAME code: %v", err)
			}
		})
	}
}

func TestValidateMaxDrop(t *testing.T) {
	tests := []struct {
		maxDrop float64
		wantErr bool
	}{
		{0.10, false},
		{0.05, false},
		{0.999, false},
		{0, true},
		{-0.1, true},
		{1, true},
		{1.5, true},
	}

	for _, tt := range tests {
		err := ValidateMaxDrop(tt.maxDrop)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMaxDrop(%g) error = %v, wantErr %v", tt.maxDrop, err, tt.wantErr)
		}
	}
}

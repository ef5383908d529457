package errors

import (
	"strings"
	"testing"
)

func TestValidateBoxName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Proc", false},
		{"valid with underscore", "my_box", false},
		{"valid with dash", "my-box", false},
		{"valid unicode", "Régulateur", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"dot", "a.b", true},
		{"space", "a b", true},
		{"tab", "a\tb", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoxName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoxName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateBoxName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "diagram.bao", false},
		{"absolute", "/tmp/diagram.gv", false},
		{"nested", "out/dir/diagram.svg", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "foo\x00.bao", true},
		{"newline", "foo\n.bao", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

package quantity

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain_integer", "42", 42, true},
		{"decimal", "3.5", 3.5, true},
		{"thousands_separator", "1,234", 1234, true},
		{"fullwidth_separator", "1，234", 1234, true},
		{"embedded_text", "约 15 个", 15, true},
		{"unit_suffix", "200pcs", 200, true},
		{"negative", "-3", -3, true},
		{"empty", "", 0, false},
		{"dash_remark", "-", 0, false},
		{"pure_text", "合计", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsIntegral(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{3, true},
		{3.0000001, true},
		{3.5, false},
		{-2, true},
		{0, true},
	}

	for _, tt := range tests {
		if got := IsIntegral(tt.value); got != tt.want {
			t.Errorf("IsIntegral(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{3, "3"},
		{3.0000001, "3"},
		{0.125, "0.125"},
		{2.5, "2.5"},
		{1234, "1234"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := Format(tt.value); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

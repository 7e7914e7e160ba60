package core

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		cents    int64
		negative bool
		wantErr  bool
	}{
		{name: "plain decimal", input: "4.85", cents: 485},
		{name: "dollar sign", input: "$4.85", cents: 485},
		{name: "parentheses negative", input: "(4.85)", cents: 485, negative: true},
		{name: "leading minus", input: "-1,200.5", cents: 120050, negative: true},
		{name: "explicit plus", input: "+10", cents: 1000},
		{name: "integer", input: "52", cents: 5200},
		{name: "zero", input: "0", cents: 0},
		{name: "thousands separators", input: "1,234,567.89", cents: 123456789},
		{name: "single fractional digit", input: "3.1", cents: 310},
		{name: "third digit rounds up", input: "1.005", cents: 101},
		{name: "third digit rounds down", input: "1.004", cents: 100},
		{name: "dollar inside parentheses", input: "($12.00)", cents: 1200, negative: true},
		{name: "surrounding whitespace", input: "  7.25  ", cents: 725},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two decimal points", input: "1.2.3", wantErr: true},
		{name: "letters in fraction", input: "1.2x", wantErr: true},
		{name: "bare symbols", input: "$", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, negative, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %d", tt.input, cents)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if cents != tt.cents {
				t.Errorf("ParseAmount(%q) cents = %d, want %d", tt.input, cents, tt.cents)
			}
			if negative != tt.negative {
				t.Errorf("ParseAmount(%q) negative = %v, want %v", tt.input, negative, tt.negative)
			}
		})
	}
}

func TestParseAmountNormalizedFormsAgree(t *testing.T) {
	// The same value written three ways must parse to the same cents.
	forms := []string{"4.85", "$4.85", "(4.85)"}
	for _, f := range forms {
		cents, _, err := ParseAmount(f)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", f, err)
		}
		if cents != 485 {
			t.Errorf("ParseAmount(%q) = %d, want 485", f, cents)
		}
	}
}

func TestParseAmountOverflow(t *testing.T) {
	if _, _, err := ParseAmount("92233720368547759"); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{314716, "3147.16"},
		{5284, "52.84"},
		{0, "0.00"},
		{5, "0.05"},
		{-1250, "-12.50"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.cents); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyFloat64(t *testing.T) {
	m := Money{Cents: 485}
	if got := m.Float64(); got != 4.85 {
		t.Errorf("Float64() = %v, want 4.85", got)
	}
}

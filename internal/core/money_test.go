package core

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency string
		want     string
	}{
		{"euro symbol", 350, "EUR", "€ 3,50"},
		{"dollar symbol", 1000, "USD", "$ 10,00"},
		{"sol symbol", 43873, "PEN", "S/ 438,73"},
		{"pound symbol", 250, "GBP", "£ 2,50"},
		{"yen symbol", 100050, "JPY", "¥ 1000,50"},
		{"four digits not grouped", 123456, "EUR", "€ 1234,56"},
		{"five digits grouped", 1234567, "EUR", "€ 12.345,67"},
		{"seven digits grouped", 123456789, "EUR", "€ 1.234.567,89"},
		{"unknown code falls back to code", 1000, "XXX", "XXX 10,00"},
		{"negative keeps minus on number", -1575, "USD", "$ -15,75"},
		{"zero", 0, "EUR", "€ 0,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(Money{Cents: tt.cents}, tt.currency)
			if got != tt.want {
				t.Errorf("FormatAmount(%d, %q) = %q, want %q", tt.cents, tt.currency, got, tt.want)
			}
		})
	}
}

func TestDecimalString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{350, "3.50"},
		{0, "0.00"},
		{-50, "-0.50"},
		{1234567, "12345.67"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).DecimalString(); got != tc.want {
			t.Errorf("DecimalString(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := Money{Cents: 43873}
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "438.73" {
		t.Fatalf("marshal = %s, want 438.73", data)
	}
	var back Money
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Cents != m.Cents {
		t.Fatalf("round trip = %d, want %d", back.Cents, m.Cents)
	}
}

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"438.73", 43873, false},
		{"0", 0, true},
		{"", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDecimalToCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecimalToCents(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

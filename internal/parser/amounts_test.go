package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fields(s string) []string {
	return strings.Fields(s)
}

func TestFindAmounts(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Paid to Swiggy ₹350", []string{"350.00"}},
		{"₹1,234.56", []string{"1234.56"}},
		{"Rs.350 Uber", []string{"350.00"}},
		{"Rs 50", []string{"50.00"}},
		{"rs.75", []string{"75.00"}},
		{"INR 1,234", []string{"1234.00"}},
		{"₹ 10.5", []string{"10.50"}},
		{"Swiggy ₹350 ₹20 fee", []string{"350.00", "20.00"}},
		{"₹999,999.99", []string{"999999.99"}},
		{"₹2,000,000", nil},
		{"₹1000000", nil},
		{"₹2,000,000 then ₹150", []string{"150.00"}},
		{"₹0", nil},
		{"₹0.00", nil},
		{"₹0.001 ₹5", []string{"5.00"}},
		{"₹12.345", []string{"12.35"}},
		{"₹999,999.999", nil},
		{"Mrs 500 Sharma", nil},
		{"350 without a currency marker", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for _, amt := range findAmounts(tt.input) {
				got = append(got, amt.StringFixed(2))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"350", "350", true},
		{"1,234.56", "1234.56", true},
		{" 25.99 ", "25.99", true},
		{"0", "", false},
		{"1,000,000", "", false},
		{",", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestStripAmounts(t *testing.T) {
	got := stripAmounts("Swiggy ₹350 Rs.20 INR 1,000 ₹2,000,000 fee")
	assert.Equal(t, []string{"Swiggy", "fee"}, fields(got))
}

func TestStripAmounts_ConsumesWholeFraction(t *testing.T) {
	got := stripAmounts("Swiggy ₹0.001 Rs.12.3456 fee")
	assert.Equal(t, []string{"Swiggy", "fee"}, fields(got))
}

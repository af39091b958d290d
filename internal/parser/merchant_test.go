package parser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Paid to Swiggy ₹350", "Swiggy"},
		{"Feb 20, 2026 Received from Ramesh ₹500 credit", "Ramesh"},
		{"Feb 20, 2026 Swiggy ₹350 ₹20 fee", "Swiggy fee"},
		{"Sent to Priya | UPI Ref 12345 ₹99", "Priya 12345"},
		{"DEBIT • Zomato — Order ₹150", "Zomato Order"},
		{"20/02/2026 ₹100", models.UnknownMerchant},
		{"Paid to ₹100 UTR", models.UnknownMerchant},
		{"Refund from Amazon ₹499", "from Amazon"},
		{"Feb 20, 2026 ₹0.001 ₹5", models.UnknownMerchant},
		{"Paid to Uber ₹12.345", "Uber"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMerchant(tt.input))
		})
	}
}

func TestExtractMerchant_Truncates(t *testing.T) {
	long := "Paid to " + strings.Repeat("Bharat Super Bazaar ", 10) + "₹100"
	got := extractMerchant(long)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), models.MaxMerchantLen)
	assert.True(t, strings.HasPrefix(got, "Bharat Super Bazaar"))
	assert.Equal(t, strings.TrimSpace(got), got)
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Direction
	}{
		{"Paid to Swiggy ₹350", models.Debit},
		{"DEBIT ₹350", models.Debit},
		{"Received from Ramesh ₹500", models.Credit},
		{"CREDIT ₹500", models.Credit},
		{"Cashback from PhonePe ₹5", models.Credit},
		{"Refund - Flipkart ₹799", models.Credit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, directionOf(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "₹₹", truncate("₹₹₹", 2))
}

package domain_test

import (
	"testing"

	"github.com/finbooks/gl_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-2026-00001", domain.FormatEntryNumber(2026, 1))
	assert.Equal(t, "JE-2026-00042", domain.FormatEntryNumber(2026, 42))
	assert.Equal(t, "JE-2025-12345", domain.FormatEntryNumber(2025, 12345))
	assert.Equal(t, "JE-2026-100000", domain.FormatEntryNumber(2026, 100000))
}

func TestSumLines(t *testing.T) {
	lines := []domain.JournalLine{
		{DebitAmount: decimal.NewFromFloat(10.25), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.NewFromFloat(4.75), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(15)},
	}

	debits, credits := domain.SumLines(lines)

	assert.True(t, debits.Equal(decimal.NewFromInt(15)))
	assert.True(t, credits.Equal(decimal.NewFromInt(15)))
}

func TestSumLines_Empty(t *testing.T) {
	debits, credits := domain.SumLines(nil)

	assert.True(t, debits.IsZero())
	assert.True(t, credits.IsZero())
}

func TestClassifyOverdue(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{-5, domain.BucketCurrent},
		{0, domain.BucketCurrent},
		{1, domain.Bucket1To30},
		{30, domain.Bucket1To30},
		{31, domain.Bucket31To60},
		{60, domain.Bucket31To60},
		{61, domain.Bucket61To90},
		{90, domain.Bucket61To90},
		{91, domain.BucketOver90},
		{400, domain.BucketOver90},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ClassifyOverdue(tc.days), "days=%d", tc.days)
	}
}

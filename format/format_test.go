package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	cases := map[string]string{
		"0":         "Rp 0",
		"950":       "Rp 950",
		"26950":     "Rp 26.950",
		"271950":    "Rp 271.950",
		"1234567.5": "Rp 1.234.568",
		"-1000":     "-Rp 1.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, Rupiah(decimal.RequireFromString(in)), in)
	}
}

func TestRupiahStringNeverEmpty(t *testing.T) {
	assert.Equal(t, "Rp 0", RupiahString(""))
	assert.Equal(t, "Rp 0", RupiahString("abc"))
	assert.Equal(t, "Rp 100.000", RupiahString(" 100000 "))
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "1", Grouped(1))
	assert.Equal(t, "100", Grouped(100))
	assert.Equal(t, "1.000", Grouped(1000))
	assert.Equal(t, "100.000.000", Grouped(100000000))
	assert.Equal(t, "-12.345", Grouped(-12345))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "—", Percent(decimal.Zero, true))
	assert.Equal(t, "—", Percent(decimal.NewFromInt(5), false))
	assert.Equal(t, "10%", Percent(decimal.NewFromInt(10), true))
	assert.Equal(t, "12.5%", Percent(decimal.RequireFromString("12.50"), true))
}

func TestDates(t *testing.T) {
	ts := time.Date(2025, time.March, 4, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "04 March 2025", LongDate(ts))
	assert.Equal(t, "-", LongDate(time.Time{}))
	assert.Equal(t, "04/03/25", ShortDate(ts))
	assert.Equal(t, "04 March 2025 14:05", Stamp(ts))
	assert.Equal(t, "20250304_1405", FileStamp(ts))
	assert.Equal(t, "-", OrDash(""))
}

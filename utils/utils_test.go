package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 9, 2, 17, 45, 30, 123456789, time.UTC)
	got := StartOfDay(ts)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestEndOfDay(t *testing.T) {
	ts := time.Date(2026, 9, 2, 3, 0, 0, 0, time.UTC)
	got := EndOfDay(ts)
	assert.Equal(t, time.Date(2026, 9, 2, 23, 59, 59, 999000000, time.UTC), got)

	// End of one day stays strictly before the next day's start
	assert.True(t, got.Before(StartOfDay(ts.AddDate(0, 0, 1))))
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, ch := range otp {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

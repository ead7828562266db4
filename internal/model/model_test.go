package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalTime(t *testing.T) {
	assert.Equal(t, "02:30", ComputeTotalTime("08:00", "10:30"))
	assert.Equal(t, "00:00", ComputeTotalTime("09:15", "09:15"))
	assert.Equal(t, "03:00", ComputeTotalTime("22:00", "01:00"))
	assert.Equal(t, "", ComputeTotalTime("", "10:00"))
	assert.Equal(t, "", ComputeTotalTime("8am", "10:00"))
}

func TestSanitizeQuantity(t *testing.T) {
	assert.Equal(t, 3, SanitizeQuantity(3))
	assert.Equal(t, 4, SanitizeQuantity("4"))
	assert.Equal(t, 1, SanitizeQuantity("lots"))
	assert.Equal(t, 1, SanitizeQuantity(0))
	assert.Equal(t, 1, SanitizeQuantity(-2))
	assert.Equal(t, 1, SanitizeQuantity(nil))
}

func TestSanitizePrice(t *testing.T) {
	assert.Equal(t, 12.5, SanitizePrice(12.5))
	assert.Equal(t, 99.0, SanitizePrice("99"))
	assert.Equal(t, 0.0, SanitizePrice("free"))
	assert.Equal(t, 0.0, SanitizePrice(-5))
	assert.Equal(t, 0.0, SanitizePrice(math.NaN()))
	assert.Equal(t, 0.0, SanitizePrice(nil))
}

func TestQuoteShouldExpire(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	old := Quote{Status: QuoteStatusValid, CreatedAt: now.Add(-DefaultQuoteValidity - time.Minute)}
	assert.True(t, old.ShouldExpire(now, DefaultQuoteValidity))

	fresh := Quote{Status: QuoteStatusValid, CreatedAt: now.Add(-48 * time.Hour)}
	assert.False(t, fresh.ShouldExpire(now, DefaultQuoteValidity))

	accepted := Quote{Status: QuoteStatusAccepted, CreatedAt: now.Add(-30 * 24 * time.Hour)}
	assert.False(t, accepted.ShouldExpire(now, DefaultQuoteValidity))
}

func TestPrincipalRoles(t *testing.T) {
	assert.True(t, Principal{UID: "u"}.IsPrivileged())
	assert.True(t, Principal{UID: "u", DisplayName: "Sam"}.IsTechnician())
}

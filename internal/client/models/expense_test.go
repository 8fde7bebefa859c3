package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/expenses/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	for _, in := range []string{"daily", "Weekly", " MONTHLY ", "yearly"} {
		f, err := ParseFrequency(in)
		require.NoError(t, err, in)
		assert.True(t, f.Valid())
	}

	_, err := ParseFrequency("hourly")
	require.ErrorIs(t, err, common.ErrInvalidFrequency)
}

func TestExpense_UnmarshalBackendShape(t *testing.T) {
	raw := `{"date":"2024-01-05","amount":10.5,"description":null,"attachment_filename":null,"is_recurring":false,"frequency":null}`

	var e Expense
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "2024-01-05", e.Date)
	assert.True(t, decimal.RequireFromString("10.5").Equal(e.Amount))
	assert.Empty(t, e.Description)
	assert.False(t, e.HasAttachment())
	assert.Equal(t, "Untitled expense", e.Title())
}

func TestExpense_NormalizeDropsFrequencyOfOneTime(t *testing.T) {
	e := Expense{IsRecurring: false, Frequency: FrequencyMonthly}
	e.Normalize()
	assert.Empty(t, e.Frequency)

	r := Expense{IsRecurring: true, Frequency: FrequencyWeekly}
	r.Normalize()
	assert.Equal(t, FrequencyWeekly, r.Frequency)
}

func TestRecurringRule_Title(t *testing.T) {
	assert.Equal(t, "Recurring expense", RecurringRule{}.Title())
	assert.Equal(t, "Rent", RecurringRule{Description: "Rent"}.Title())
}

func TestUser_DisplayHelpers(t *testing.T) {
	u := User{Name: "ada lovelace"}
	assert.Equal(t, "A", u.Initial())
	assert.Equal(t, PlaceholderName, u.DisplayEmail())

	u.Email = "ada@example.com"
	assert.Equal(t, "ada@example.com", u.DisplayEmail())
	assert.Equal(t, "U", User{}.Initial())
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	fresh := Session{LastActive: now.Add(-23 * time.Hour)}
	stale := Session{LastActive: now.Add(-24*time.Hour - time.Millisecond)}
	edge := Session{LastActive: now.Add(-24 * time.Hour)}

	assert.False(t, fresh.Expired(now, common.SessionTimeout))
	assert.True(t, stale.Expired(now, common.SessionTimeout))
	assert.False(t, edge.Expired(now, common.SessionTimeout), "exactly the timeout is still valid")
}

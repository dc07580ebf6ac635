package checkout

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func bt(weekday time.Weekday, hour int) BusinessTime {
	return BusinessTime{Year: 2024, Month: time.January, Day: 1, Weekday: weekday, Hour: hour}
}

func TestIsAfterCutoff_Friday(t *testing.T) {
	rules := DefaultRules()
	for hour := 0; hour <= 18; hour++ {
		assert.False(t, rules.IsAfterCutoff(bt(time.Friday, hour)), "friday %02d:00", hour)
	}
	for hour := 19; hour <= 23; hour++ {
		assert.True(t, rules.IsAfterCutoff(bt(time.Friday, hour)), "friday %02d:00", hour)
	}
}

func TestIsAfterCutoff_Weekdays(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		day  time.Weekday
		want bool
	}{
		{time.Monday, false},
		{time.Tuesday, false},
		{time.Wednesday, false},
		{time.Thursday, false},
		{time.Saturday, true},
		{time.Sunday, true},
	}
	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			for _, hour := range []int{0, 12, 23} {
				assert.Equal(t, tt.want, rules.IsAfterCutoff(bt(tt.day, hour)))
			}
		})
	}
}

func TestIsAfterCutoff_ExactBoundary(t *testing.T) {
	loc := newYork(t)
	clock := FixedClock(loc, time.Date(2024, time.January, 5, 19, 0, 0, 0, loc))
	assert.True(t, DefaultRules().IsAfterCutoff(clock.Now()))

	clock = FixedClock(loc, time.Date(2024, time.January, 5, 18, 59, 59, 0, loc))
	assert.False(t, DefaultRules().IsAfterCutoff(clock.Now()))
}

func TestZoneClock_UsesBusinessZone(t *testing.T) {
	// 00:30 UTC Saturday is 19:30 Friday in New York.
	clock := FixedClock(newYork(t), time.Date(2024, time.January, 6, 0, 30, 0, 0, time.UTC))
	now := clock.Now()
	assert.Equal(t, time.Friday, now.Weekday)
	assert.Equal(t, 19, now.Hour)
	assert.Equal(t, 30, now.Minute)
	assert.Equal(t, Date{Year: 2024, Month: time.January, Day: 5}, now.Date())
}

func TestIsOutsideZone(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name               string
		zip, county, state string
		want               bool
	}{
		{"broward zip in FL", "33021", "", "FL", false},
		{"new york", "10001", "", "NY", true},
		{"broward county only", "", "Broward", "", false},
		{"nothing supplied", "", "", "", false},
		{"county wins over state", "10001", " Broward County ", "NY", false},
		{"333 prefix", "33301", "", "", false},
		{"zip with whitespace", " 33021 ", "", "fl", false},
		{"unrecognized FL zip", "32801", "", "FL", true},
		{"out of state no zip", "", "", "GA", true},
		{"FL without zip", "", "Orange", "FL", false},
		{"zip+4 in zone", "33021-1234", "", "FL", false},
		{"zip+4 out of zone", "32801-1234", "", "FL", true},
		{"malformed zip+4", "33021-12", "", "", true},
		{"zip+4 without dash", "330211234", "", "", true},
		{"short zip", "330", "", "", true},
		{"lowercase state", "", "", "fl", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.IsOutsideZone(tt.zip, tt.county, tt.state))
		})
	}
}

func TestResolveScheduledWeek(t *testing.T) {
	wednesday := BusinessTime{Year: 2024, Month: time.January, Day: 3, Weekday: time.Wednesday, Hour: 10}
	friday := BusinessTime{Year: 2024, Month: time.January, Day: 5, Weekday: time.Friday, Hour: 20}
	sunday := BusinessTime{Year: 2024, Month: time.January, Day: 7, Weekday: time.Sunday, Hour: 9}
	monday := BusinessTime{Year: 2024, Month: time.January, Day: 29, Weekday: time.Monday, Hour: 9}

	tests := []struct {
		name        string
		now         BusinessTime
		afterCutoff bool
		next        bool
		want        string
	}{
		{"wednesday before cutoff", wednesday, false, false, "2024-01-07"},
		{"next flag ignored before cutoff", wednesday, false, true, "2024-01-07"},
		{"friday late without next", friday, true, false, "2024-01-07"},
		{"friday late with next", friday, true, true, "2024-01-14"},
		{"sunday is its own week start", sunday, true, false, "2024-01-07"},
		{"sunday with next", sunday, true, true, "2024-01-14"},
		{"month rollover", monday, false, false, "2024-02-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveScheduledWeek(tt.now, DeliverySunday, tt.afterCutoff, tt.next)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, time.Sunday, got.Weekday())
		})
	}
}

func TestResolveScheduledWeek_DeliveryDayDoesNotMoveWeek(t *testing.T) {
	now := BusinessTime{Year: 2024, Month: time.January, Day: 3, Weekday: time.Wednesday, Hour: 10}
	assert.Equal(t,
		ResolveScheduledWeek(now, DeliverySunday, false, false),
		ResolveScheduledWeek(now, DeliveryMonday, false, false))
}

func TestResolveScheduledWeek_NextWindowAddsSevenDays(t *testing.T) {
	now := BusinessTime{Year: 2024, Month: time.January, Day: 5, Weekday: time.Friday, Hour: 20}
	without := ResolveScheduledWeek(now, DeliveryMonday, true, false)
	with := ResolveScheduledWeek(now, DeliveryMonday, true, true)
	assert.Equal(t, without.AddDays(7), with)
}

func TestComputeTotal(t *testing.T) {
	rules := DefaultRules()
	d := decimal.RequireFromString

	tests := []struct {
		name        string
		subtotal    string
		fulfillment Fulfillment
		outside     bool
		accepted    bool
		wantTotal   string
		wantOutside string
	}{
		{"delivery outside accepted", "79.99", FulfillmentDelivery, true, true, "104.99", "15"},
		{"delivery outside not accepted", "79.99", FulfillmentDelivery, true, false, "89.99", "0"},
		{"delivery in zone", "79.99", FulfillmentDelivery, false, true, "89.99", "0"},
		{"pickup", "79.99", FulfillmentPickup, false, false, "79.99", "0"},
		{"half up rounding", "10.005", FulfillmentPickup, false, false, "10.01", "0"},
		{"never negative", "-5", FulfillmentPickup, false, false, "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.ComputeTotal(d(tt.subtotal), tt.fulfillment, tt.outside, tt.accepted)
			assert.True(t, d(tt.wantTotal).Equal(got.Total), "total = %s", got.Total)
			assert.True(t, d(tt.wantOutside).Equal(got.OutsideZoneFee), "outside fee = %s", got.OutsideZoneFee)
		})
	}
}

func TestSubtotal(t *testing.T) {
	lines := []CartLine{
		{ItemID: "a", Name: "A", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
		{ItemID: "b", Name: "B", UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3},
	}
	assert.Equal(t, "25.30", Subtotal(lines).StringFixed(2))
	assert.True(t, Subtotal(nil).IsZero())
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	bad := DefaultRules()
	bad.CutoffHour = 24
	assert.Error(t, bad.Validate())

	bad = DefaultRules()
	bad.DeliveryFee = decimal.NewFromInt(-1)
	assert.Error(t, bad.Validate())

	bad = DefaultRules()
	bad.InZonePostalPrefixes = []string{"33a"}
	assert.Error(t, bad.Validate())

	bad = DefaultRules()
	bad.TimeWindows = nil
	assert.Error(t, bad.Validate())
}

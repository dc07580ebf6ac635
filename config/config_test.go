package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DELIVERY_FEE", "OUTSIDE_ZONE_FEE", "CUTOFF_WEEKDAY", "CUTOFF_HOUR",
		"IN_ZONE_POSTAL_PREFIXES", "TIME_WINDOWS", "DATABASE_URL", "DB_HOST", "BUSINESS_TIMEZONE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "10", cfg.DeliveryFee.String())
	assert.Equal(t, "15", cfg.OutsideZoneFee.String())
	assert.Equal(t, time.Friday, cfg.CutoffWeekday)
	assert.Equal(t, 19, cfg.CutoffHour)
	assert.Equal(t, []string{"330", "333"}, cfg.PostalPrefixes)
	assert.Len(t, cfg.TimeWindows, 4)
	assert.False(t, cfg.DatabaseConfigured())

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, "broward", rules.InZoneCounty)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "7.50")
	t.Setenv("CUTOFF_WEEKDAY", "Thursday")
	t.Setenv("CUTOFF_HOUR", "17")
	t.Setenv("IN_ZONE_POSTAL_PREFIXES", "330, 331 ,")
	t.Setenv("TIME_WINDOWS", "9:00am - 11:00am|1:00pm - 3:00pm")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7.5", cfg.DeliveryFee.String())
	assert.Equal(t, time.Thursday, cfg.CutoffWeekday)
	assert.Equal(t, 17, cfg.CutoffHour)
	assert.Equal(t, []string{"330", "331"}, cfg.PostalPrefixes)
	assert.Equal(t, []string{"9:00am - 11:00am", "1:00pm - 3:00pm"}, cfg.TimeWindows)
	assert.True(t, cfg.DatabaseConfigured())
	assert.Contains(t, cfg.DatabaseURL, "host=db")
}

func TestLoad_InvalidBusinessSettings(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DELIVERY_FEE", "ten"},
		{"OUTSIDE_ZONE_FEE", "1.2.3"},
		{"CUTOFF_WEEKDAY", "someday"},
		{"CUTOFF_HOUR", "7pm"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestRules_RejectsOutOfRange(t *testing.T) {
	t.Setenv("CUTOFF_HOUR", "25")
	cfg, err := Load()
	require.NoError(t, err)
	_, err = cfg.Rules()
	assert.Error(t, err)

	cfg.BusinessTimezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}

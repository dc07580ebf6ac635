package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rules holds the deployment constants the engine evaluates against.
type Rules struct {
	DeliveryFee    decimal.Decimal
	OutsideZoneFee decimal.Decimal

	CutoffWeekday time.Weekday
	CutoffHour    int

	InZonePostalPrefixes []string
	InZoneCounty         string
	InZoneState          string

	TimeWindows []string
}

var DefaultTimeWindows = []string{
	"8:00am - 10:00am",
	"10:00am - 12:00pm",
	"12:00pm - 2:00pm",
	"4:00pm - 6:00pm",
}

// DefaultRules returns the storefront's standard rules: Friday 7pm cutoff,
// Broward County service zone, $10 delivery and $15 outside-zone fees.
func DefaultRules() Rules {
	return Rules{
		DeliveryFee:          decimal.RequireFromString("10.00"),
		OutsideZoneFee:       decimal.RequireFromString("15.00"),
		CutoffWeekday:        time.Friday,
		CutoffHour:           19,
		InZonePostalPrefixes: []string{"330", "333"},
		InZoneCounty:         "broward",
		InZoneState:          "fl",
		TimeWindows:          append([]string(nil), DefaultTimeWindows...),
	}
}

// Validate reports configuration errors. They are fatal at startup.
func (r Rules) Validate() error {
	if r.DeliveryFee.IsNegative() || r.OutsideZoneFee.IsNegative() {
		return errors.New("fees must not be negative")
	}
	if r.CutoffWeekday < time.Sunday || r.CutoffWeekday > time.Saturday {
		return fmt.Errorf("invalid cutoff weekday %d", r.CutoffWeekday)
	}
	if r.CutoffHour < 0 || r.CutoffHour > 23 {
		return fmt.Errorf("invalid cutoff hour %d", r.CutoffHour)
	}
	for _, p := range r.InZonePostalPrefixes {
		if len(p) == 0 || len(p) > 5 || !isDigits(p) {
			return fmt.Errorf("invalid in-zone postal prefix %q", p)
		}
	}
	if len(r.TimeWindows) == 0 {
		return errors.New("at least one time window is required")
	}
	return nil
}

// weekOrdinal numbers weekdays Monday=1 .. Sunday=7. The ordering week opens
// Monday, so the weekend trails the Friday cutoff.
func weekOrdinal(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// IsAfterCutoff reports whether now is at or past the weekly cutoff. The
// boundary hour is inclusive.
func (r Rules) IsAfterCutoff(now BusinessTime) bool {
	day, cutoff := weekOrdinal(now.Weekday), weekOrdinal(r.CutoffWeekday)
	if day > cutoff {
		return true
	}
	return day == cutoff && now.Hour >= r.CutoffHour
}

// CutoffDescriptor renders the cutoff for display, e.g. "Friday 19:00".
func (r Rules) CutoffDescriptor() string {
	return fmt.Sprintf("%s %02d:00", r.CutoffWeekday, r.CutoffHour)
}

// IsOutsideZone classifies a delivery address. First match wins:
// in-zone county, in-zone 5-digit postal code (ZIP+4 is read by its first five
// digits), out-of-state, any other postal code. With nothing to go on the address is not flagged.
func (r Rules) IsOutsideZone(postalCode, county, state string) bool {
	zip := strings.TrimSpace(postalCode)
	normalizedCounty := strings.ToLower(strings.TrimSpace(county))
	normalizedState := strings.ToLower(strings.TrimSpace(state))

	if normalizedCounty != "" && r.InZoneCounty != "" &&
		strings.Contains(normalizedCounty, strings.ToLower(r.InZoneCounty)) {
		return false
	}
	if r.isInZonePostalCode(zip) {
		return false
	}
	if normalizedState != "" && normalizedState != strings.ToLower(r.InZoneState) {
		return true
	}
	if zip != "" {
		return true
	}
	return false
}

func (r Rules) isInZonePostalCode(zip string) bool {
	if len(zip) == 10 && zip[5] == '-' && isDigits(zip[6:]) {
		zip = zip[:5]
	}
	if len(zip) != 5 || !isDigits(zip) {
		return false
	}
	for _, prefix := range r.InZonePostalPrefixes {
		if strings.HasPrefix(zip, prefix) {
			return true
		}
	}
	return false
}

// ResolveScheduledWeek returns the Sunday that starts the delivery week: the
// next Sunday on or after now, pushed a week when a late order opted into the
// next window. The delivery day only picks a day inside that week.
func ResolveScheduledWeek(now BusinessTime, _ DeliveryDay, afterCutoff, scheduleNextWindow bool) Date {
	daysUntilSunday := (7 - int(now.Weekday)) % 7
	sunday := now.Date().AddDays(daysUntilSunday)
	if afterCutoff && scheduleNextWindow {
		sunday = sunday.AddDays(7)
	}
	return sunday
}

// Subtotal sums unit price times quantity over the cart.
func Subtotal(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return money(sum)
}

// ComputeTotal prices an order. The outside-zone fee is charged only once the
// customer accepted it.
func (r Rules) ComputeTotal(subtotal decimal.Decimal, fulfillment Fulfillment, outsideZone, outsideZoneAccepted bool) PricingResult {
	deliveryFee := decimal.Zero
	if fulfillment == FulfillmentDelivery {
		deliveryFee = r.DeliveryFee
	}
	outsideZoneFee := decimal.Zero
	if outsideZone && outsideZoneAccepted {
		outsideZoneFee = r.OutsideZoneFee
	}
	return PricingResult{
		Subtotal:       money(subtotal),
		DeliveryFee:    money(deliveryFee),
		OutsideZoneFee: money(outsideZoneFee),
		Total:          money(subtotal.Add(deliveryFee).Add(outsideZoneFee)),
	}
}

// money clamps at zero and rounds half-up to cents.
func money(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return d.Round(2)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

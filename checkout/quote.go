package checkout

import "github.com/shopspring/decimal"

// Acknowledgement names a confirmation the customer still has to give.
type Acknowledgement string

const (
	AckScheduleNextWindow Acknowledgement = "scheduleNextWindow"
	AckOutsideZoneFee     Acknowledgement = "outsideZoneAccepted"
)

// Quote is the checkout preview: what the engine would charge and schedule
// for the cart as submitted, and what confirmations are still missing.
type Quote struct {
	Eligibility      Eligibility       `json:"eligibility"`
	Pricing          PricingResult     `json:"pricing"`
	Required         []Acknowledgement `json:"required"`
	DeliveryFee      decimal.Decimal   `json:"flatDeliveryFee"`
	OutsideZoneFee   decimal.Decimal   `json:"flatOutsideZoneFee"`
	TimeWindows      []string          `json:"timeWindows"`
	CutoffDescriptor string            `json:"cutoff"`
}

// Quote runs the cutoff, zone, schedule and pricing rules without the
// contact or acknowledgement checks. An unknown fulfillment is priced as
// pickup.
func (e *Engine) Quote(req OrderRequest) Quote {
	fulfillment, err := ParseFulfillment(req.Fulfillment)
	if err != nil {
		fulfillment = FulfillmentPickup
	}
	day, err := ParseDeliveryDay(req.DeliveryDay)
	if err != nil {
		day = DeliverySunday
	}

	now := e.clock.Now()
	afterCutoff := e.rules.IsAfterCutoff(now)
	outsideZone := false
	if fulfillment == FulfillmentDelivery {
		addr := trimAddress(req.Address)
		outsideZone = e.rules.IsOutsideZone(addr.PostalCode, addr.County, addr.State)
	}

	required := []Acknowledgement{}
	if afterCutoff && !req.ScheduleNextWindow {
		required = append(required, AckScheduleNextWindow)
	}
	if outsideZone && !req.OutsideZoneAccepted {
		required = append(required, AckOutsideZoneFee)
	}

	return Quote{
		Eligibility: Eligibility{
			AfterCutoff:        afterCutoff,
			OutsideZone:        outsideZone,
			ScheduledWeekStart: ResolveScheduledWeek(now, day, afterCutoff, req.ScheduleNextWindow),
		},
		Pricing:          e.rules.ComputeTotal(Subtotal(req.Lines), fulfillment, outsideZone, req.OutsideZoneAccepted),
		Required:         required,
		DeliveryFee:      e.rules.DeliveryFee,
		OutsideZoneFee:   e.rules.OutsideZoneFee,
		TimeWindows:      e.rules.TimeWindows,
		CutoffDescriptor: e.rules.CutoffDescriptor(),
	}
}

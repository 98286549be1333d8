package stats

import (
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/shopspring/decimal"
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// PeriodKind drives the divisor used by the prorated charge policy.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "daily"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
)

// ChargePolicy selects how charges enter an aggregate. The two policies come
// from different revisions of the business rules and are not equivalent;
// the active one is a configuration choice.
type ChargePolicy string

const (
	// ChargePolicyWindowed sums only charges dated inside the window.
	ChargePolicyWindowed ChargePolicy = "windowed"
	// ChargePolicyProrated takes the all-time charge total and divides it by
	// a fixed divisor per period kind: 20 for daily, 4 for weekly, 1 for
	// monthly and anything longer.
	ChargePolicyProrated ChargePolicy = "prorated"
)

var (
	proratedDailyDivisor  = decimal.NewFromInt(20)
	proratedWeeklyDivisor = decimal.NewFromInt(4)
)

// Aggregate holds the derived financial totals for one window.
type Aggregate struct {
	RevenueHt    decimal.Decimal
	RevenueTtc   decimal.Decimal
	Charges      decimal.Decimal
	Commission   decimal.Decimal
	Profit       decimal.Decimal
	ClientsCount int
}

// Compute derives the aggregate for the given window. It is a pure function
// of its inputs: revenues and charges outside the window are ignored (unless
// the prorated policy is active, which by definition uses the all-time charge
// total), commission = revenueHt * pct/100 and profit = revenueHt - charges -
// commission. Empty inputs yield an all-zero aggregate.
func Compute(revenues []revenue.Revenue, charges []charge.Charge, w Window, commissionPct decimal.Decimal, policy ChargePolicy, kind PeriodKind) Aggregate {
	agg := Aggregate{
		RevenueHt:  decimal.Zero,
		RevenueTtc: decimal.Zero,
		Charges:    decimal.Zero,
		Commission: decimal.Zero,
		Profit:     decimal.Zero,
	}

	for _, r := range revenues {
		if !w.Contains(r.Date) {
			continue
		}
		agg.RevenueHt = agg.RevenueHt.Add(r.AmountHt)
		agg.RevenueTtc = agg.RevenueTtc.Add(r.AmountTtc)
		agg.ClientsCount++
	}

	agg.Charges = sumCharges(charges, w, policy, kind)
	agg.Commission = agg.RevenueHt.Mul(commissionPct).Div(decimal.NewFromInt(100))
	agg.Profit = agg.RevenueHt.Sub(agg.Charges).Sub(agg.Commission)

	return agg
}

func sumCharges(charges []charge.Charge, w Window, policy ChargePolicy, kind PeriodKind) decimal.Decimal {
	total := decimal.Zero

	switch policy {
	case ChargePolicyProrated:
		for _, c := range charges {
			total = total.Add(c.Amount)
		}
		switch kind {
		case PeriodDaily:
			return total.Div(proratedDailyDivisor)
		case PeriodWeekly:
			return total.Div(proratedWeeklyDivisor)
		default:
			return total
		}
	default:
		for _, c := range charges {
			if w.Contains(c.Date) {
				total = total.Add(c.Amount)
			}
		}
		return total
	}
}

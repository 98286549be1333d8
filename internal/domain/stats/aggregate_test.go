package stats

import (
	"testing"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rev(ht, ttc string, date time.Time) revenue.Revenue {
	return revenue.Revenue{
		AmountHt:  decimal.RequireFromString(ht),
		AmountTtc: decimal.RequireFromString(ttc),
		Date:      date,
	}
}

func chg(amount string, date time.Time) charge.Charge {
	return charge.Charge{
		Amount: decimal.RequireFromString(amount),
		Date:   date,
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	w := Window{Start: day(2025, time.March, 3), End: day(2025, time.March, 10)}

	agg := Compute(nil, nil, w, decimal.NewFromInt(10), ChargePolicyWindowed, PeriodWeekly)

	assert.True(t, agg.RevenueHt.IsZero())
	assert.True(t, agg.RevenueTtc.IsZero())
	assert.True(t, agg.Charges.IsZero())
	assert.True(t, agg.Commission.IsZero())
	assert.True(t, agg.Profit.IsZero())
	assert.Equal(t, 0, agg.ClientsCount)
}

func TestComputeBasicIdentities(t *testing.T) {
	w := Window{Start: day(2025, time.March, 3), End: day(2025, time.March, 10)}
	revenues := []revenue.Revenue{
		rev("50.00", "60.00", day(2025, time.March, 3)),
		rev("50.00", "60.00", day(2025, time.March, 5)),
	}
	charges := []charge.Charge{
		chg("30.00", day(2025, time.March, 4)),
	}

	agg := Compute(revenues, charges, w, decimal.NewFromInt(5), ChargePolicyWindowed, PeriodWeekly)

	require.Equal(t, 2, agg.ClientsCount)
	assert.True(t, agg.RevenueHt.Equal(decimal.RequireFromString("100.00")), "revenue ht: %s", agg.RevenueHt)
	assert.True(t, agg.RevenueTtc.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, agg.Charges.Equal(decimal.RequireFromString("30.00")))
	// commission = 100 * 5% = 5
	assert.True(t, agg.Commission.Equal(decimal.RequireFromString("5")), "commission: %s", agg.Commission)
	// profit = 100 - 30 - 5 = 65
	assert.True(t, agg.Profit.Equal(decimal.RequireFromString("65")), "profit: %s", agg.Profit)
}

func TestComputeWindowBoundaries(t *testing.T) {
	w := Window{Start: day(2025, time.March, 3), End: day(2025, time.March, 10)}
	revenues := []revenue.Revenue{
		rev("10.00", "12.00", day(2025, time.March, 2)),  // before the window
		rev("10.00", "12.00", day(2025, time.March, 3)),  // inclusive start
		rev("10.00", "12.00", day(2025, time.March, 9)),  // last day inside
		rev("10.00", "12.00", day(2025, time.March, 10)), // exclusive end
	}

	agg := Compute(revenues, nil, w, decimal.Zero, ChargePolicyWindowed, PeriodWeekly)

	assert.Equal(t, 2, agg.ClientsCount)
	assert.True(t, agg.RevenueHt.Equal(decimal.RequireFromString("20.00")))
}

func TestComputeWindowedChargesIgnoreOutside(t *testing.T) {
	w := Window{Start: day(2025, time.March, 3), End: day(2025, time.March, 10)}
	charges := []charge.Charge{
		chg("100.00", day(2025, time.February, 1)),
		chg("40.00", day(2025, time.March, 5)),
	}

	agg := Compute(nil, charges, w, decimal.Zero, ChargePolicyWindowed, PeriodWeekly)

	assert.True(t, agg.Charges.Equal(decimal.RequireFromString("40.00")))
}

func TestComputeProratedCharges(t *testing.T) {
	w := Window{Start: day(2025, time.March, 3), End: day(2025, time.March, 10)}
	charges := []charge.Charge{
		chg("60.00", day(2024, time.January, 1)),
		chg("40.00", day(2025, time.March, 5)),
	}

	tests := []struct {
		name string
		kind PeriodKind
		want string
	}{
		{"daily divides by 20", PeriodDaily, "5"},
		{"weekly divides by 4", PeriodWeekly, "25"},
		{"monthly takes the whole total", PeriodMonthly, "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Compute(nil, charges, w, decimal.Zero, ChargePolicyProrated, tt.kind)
			assert.True(t, agg.Charges.Equal(decimal.RequireFromString(tt.want)), "charges: %s", agg.Charges)
		})
	}
}

func TestComputeCommissionUsesRevenueHt(t *testing.T) {
	w := Window{Start: day(2025, time.March, 3), End: day(2025, time.March, 10)}
	revenues := []revenue.Revenue{
		rev("200.00", "240.00", day(2025, time.March, 4)),
	}

	agg := Compute(revenues, nil, w, decimal.RequireFromString("12.5"), ChargePolicyWindowed, PeriodWeekly)

	// 200 * 12.5% = 25, on the pre-tax amount
	assert.True(t, agg.Commission.Equal(decimal.RequireFromString("25")), "commission: %s", agg.Commission)
	assert.True(t, agg.Profit.Equal(decimal.RequireFromString("175")))
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: day(2025, time.June, 1), End: day(2025, time.June, 2)}

	assert.True(t, w.Contains(day(2025, time.June, 1)))
	assert.True(t, w.Contains(time.Date(2025, time.June, 1, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(day(2025, time.June, 2)))
	assert.False(t, w.Contains(day(2025, time.May, 31)))
}

package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyCommission is the durable snapshot of one employee's one week of
// revenue, subject to the validate/pay workflow. Totals may be refreshed
// while unvalidated; the row freezes once validated.
type WeeklyCommission struct {
	ID              string
	EmployeeID      string
	WeekStart       time.Time // Monday, midnight
	WeekEnd         time.Time // Sunday, midnight
	TotalRevenueHt  decimal.Decimal
	TotalCommission decimal.Decimal
	ClientsCount    int
	Validated       bool
	ValidatedAt     *time.Time
	Paid            bool
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WeekKey identifies one employee's (weekStart, weekEnd) pair. Reads that
// span several employees must not collapse different employees' rows for the
// same calendar week.
type WeekKey struct {
	EmployeeID string
	Start      string
	End        string
}

func (w WeeklyCommission) WeekKey() WeekKey {
	return WeekKey{
		EmployeeID: w.EmployeeID,
		Start:      w.WeekStart.Format("2006-01-02"),
		End:        w.WeekEnd.Format("2006-01-02"),
	}
}

// Validate moves the record from Unvalidated to Validated.
func (w *WeeklyCommission) Validate(at time.Time) error {
	if w.Validated {
		return ErrAlreadyValidated
	}
	w.Validated = true
	w.ValidatedAt = &at
	return nil
}

// MarkPaid moves the record from Validated to Paid. Paid is only reachable
// after validation.
func (w *WeeklyCommission) MarkPaid(at time.Time) error {
	if !w.Validated {
		return ErrNotValidatedYet
	}
	if w.Paid {
		return ErrAlreadyPaid
	}
	w.Paid = true
	w.PaidAt = &at
	return nil
}

// Deduplicate collapses rows sharing an employee and week, keeping the
// greatest id.
// Ids are UUIDv7, so the greatest id is the most recently created row.
// Repeated job runs used to insert duplicate rows before the unique
// constraint existed; reads stay defensive about data from that era.
func Deduplicate(rows []WeeklyCommission) []WeeklyCommission {
	byWeek := make(map[WeekKey]WeeklyCommission)
	order := make([]WeekKey, 0, len(rows))

	for _, row := range rows {
		key := row.WeekKey()
		existing, seen := byWeek[key]
		if !seen {
			order = append(order, key)
			byWeek[key] = row
			continue
		}
		if row.ID > existing.ID {
			byWeek[key] = row
		}
	}

	result := make([]WeeklyCommission, 0, len(order))
	for _, key := range order {
		result = append(result, byWeek[key])
	}
	return result
}

package stats

import (
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/commission"
	"github.com/shopspring/decimal"
)

// PeriodStatsResponse is one window's worth of derived totals as served to
// the dashboards.
type PeriodStatsResponse struct {
	RevenueHt    decimal.Decimal `json:"revenue_ht"`
	RevenueTtc   decimal.Decimal `json:"revenue_ttc"`
	Charges      decimal.Decimal `json:"charges"`
	Commission   decimal.Decimal `json:"commission"`
	Profit       decimal.Decimal `json:"profit"`
	ClientsCount int             `json:"clients_count"`
}

// EmployeeMonthStatsResponse is one employee's current-month line on the
// admin dashboard.
type EmployeeMonthStatsResponse struct {
	EmployeeID   string          `json:"employee_id"`
	Name         string          `json:"name"`
	RevenueHt    decimal.Decimal `json:"revenue_ht"`
	RevenueTtc   decimal.Decimal `json:"revenue_ttc"`
	Commission   decimal.Decimal `json:"commission"`
	ClientsCount int             `json:"clients_count"`
}

// AdminDashboardResponse carries the admin overview: aggregates over four
// nested windows ending now, plus a per-employee month breakdown. The
// commission figures inside each period come from validated weekly rows,
// not from the live rate, so they match what will actually be paid.
type AdminDashboardResponse struct {
	Today     PeriodStatsResponse          `json:"today"`
	ThisWeek  PeriodStatsResponse          `json:"this_week"`
	ThisMonth PeriodStatsResponse          `json:"this_month"`
	ThisYear  PeriodStatsResponse          `json:"this_year"`
	Employees []EmployeeMonthStatsResponse `json:"employees"`
}

// EmployeeDashboardResponse carries one employee's own view: live totals for
// today and the current month, the current week's provisional commission and
// the validate/pay state of past weeks.
type EmployeeDashboardResponse struct {
	CommissionPercentage decimal.Decimal                 `json:"commission_percentage"`
	Today                PeriodStatsResponse             `json:"today"`
	ThisMonth            PeriodStatsResponse             `json:"this_month"`
	CurrentWeek          *commission.CommissionResponse  `json:"current_week,omitempty"`
	ValidatedThisMonth   decimal.Decimal                 `json:"validated_this_month"`
	PaidThisMonth        decimal.Decimal                 `json:"paid_this_month"`
	PendingCommission    decimal.Decimal                 `json:"pending_commission"`
	History              []commission.CommissionResponse `json:"history"`
}

type StatisticResponse struct {
	ID           string          `json:"id"`
	EmployeeID   *string         `json:"employee_id,omitempty"`
	Period       Period          `json:"period"`
	Date         string          `json:"date"`
	RevenueHt    decimal.Decimal `json:"revenue_ht"`
	RevenueTtc   decimal.Decimal `json:"revenue_ttc"`
	Charges      decimal.Decimal `json:"charges"`
	Commission   decimal.Decimal `json:"commission"`
	Profit       decimal.Decimal `json:"profit"`
	ClientsCount int             `json:"clients_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToStatisticResponse(s Statistic) StatisticResponse {
	return StatisticResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		Period:       s.Period,
		Date:         s.Date.Format("2006-01-02"),
		RevenueHt:    s.RevenueHt,
		RevenueTtc:   s.RevenueTtc,
		Charges:      s.Charges,
		Commission:   s.Commission,
		Profit:       s.Profit,
		ClientsCount: s.ClientsCount,
		CreatedAt:    s.CreatedAt,
	}
}

func ToStatisticResponses(rows []Statistic) []StatisticResponse {
	responses := make([]StatisticResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ToStatisticResponse(row))
	}
	return responses
}

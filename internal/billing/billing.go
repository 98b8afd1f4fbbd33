// Package billing computes late-payment interest on expense records.
package billing

import "time"

// Defaults used when a consortium has no stored financial configuration.
const (
	DefaultInterestRatePerDay = 0.005
	DefaultGracePeriodDays    = 0
)

// DaysLate returns the number of whole days between due and paid, never
// negative. Paying before the due date is never rewarded with a discount.
func DaysLate(due, paid time.Time) int {
	if !paid.After(due) {
		return 0
	}
	return int(paid.Sub(due).Hours() / 24)
}

// Interest returns the simple (non-compounding) daily interest accrued on
// base between due and paid. Lateness within the grace period accrues
// nothing; beyond it, interest is charged on the full days late.
func Interest(base float64, due, paid time.Time, ratePerDay float64, graceDays int) float64 {
	days := DaysLate(due, paid)
	if days <= graceDays {
		return 0
	}
	return float64(days) * ratePerDay * base
}

// ComputedAmount returns base plus accrued interest. When paid is nil the
// current time is used. The result is never below base.
func ComputedAmount(base float64, due time.Time, paid *time.Time, ratePerDay float64, graceDays int) float64 {
	effective := time.Now()
	if paid != nil {
		effective = *paid
	}
	return base + Interest(base, due, effective, ratePerDay, graceDays)
}

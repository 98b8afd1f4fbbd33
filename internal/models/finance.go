package models

import "time"

// FinanceConfig holds the per-consortium financial settings used when
// computing late-payment interest on expenses. One document per consortium,
// keyed by the consortium id, with upsert semantics.
type FinanceConfig struct {
	ConsortiumID string    `json:"consortiumId" db:"consortium_id" firestore:"consortiumId"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	// InterestRatePerDay is the simple (non-compounding) daily rate,
	// e.g. 0.005 for 0.5% per day
	InterestRatePerDay float64 `json:"interestRatePerDay" db:"interest_rate_per_day" firestore:"interestRatePerDay"`

	// GracePeriodDays is the number of days past due during which no
	// interest accrues
	GracePeriodDays int `json:"gracePeriodDays" db:"grace_period_days" firestore:"gracePeriodDays"`
}

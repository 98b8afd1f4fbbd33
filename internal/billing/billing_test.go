package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysLate(t *testing.T) {
	assert.Equal(t, 10, DaysLate(date("2024-01-10"), date("2024-01-20")))
	assert.Equal(t, 0, DaysLate(date("2024-01-10"), date("2024-01-10")))
	assert.Equal(t, 0, DaysLate(date("2024-01-10"), date("2024-01-05")))

	// partial days are not charged
	due := date("2024-01-10")
	assert.Equal(t, 0, DaysLate(due, due.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysLate(due, due.Add(25*time.Hour)))
}

func TestInterestTenDaysLate(t *testing.T) {
	got := Interest(1000, date("2024-01-10"), date("2024-01-20"), 0.005, 0)
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestInterestEarlyPayment(t *testing.T) {
	got := Interest(1000, date("2024-01-10"), date("2024-01-05"), 0.005, 0)
	assert.Zero(t, got)
}

func TestInterestWithinGracePeriod(t *testing.T) {
	got := Interest(1000, date("2024-01-10"), date("2024-01-13"), 0.005, 5)
	assert.Zero(t, got)

	// one day past the grace period charges all late days
	got = Interest(1000, date("2024-01-10"), date("2024-01-16"), 0.005, 5)
	assert.InDelta(t, 30.0, got, 1e-9)
}

func TestComputedAmount(t *testing.T) {
	paid := date("2024-01-20")
	got := ComputedAmount(1000, date("2024-01-10"), &paid, 0.005, 0)
	assert.InDelta(t, 1050.0, got, 1e-9)

	early := date("2024-01-05")
	got = ComputedAmount(1000, date("2024-01-10"), &early, 0.005, 0)
	assert.InDelta(t, 1000.0, got, 1e-9)
}

func TestComputedAmountNeverBelowBase(t *testing.T) {
	bases := []float64{1, 99.99, 1000, 123456.78}
	offsets := []int{-30, -1, 0, 1, 15, 365}

	due := date("2024-01-10")
	for _, base := range bases {
		for _, off := range offsets {
			paid := due.AddDate(0, 0, off)
			got := ComputedAmount(base, due, &paid, 0.005, 0)
			assert.GreaterOrEqual(t, got, base)
		}
	}
}

func TestComputedAmountNilPaidUsesNow(t *testing.T) {
	// due far in the future, unpaid: no interest yet
	due := time.Now().AddDate(0, 1, 0)
	got := ComputedAmount(500, due, nil, 0.005, 0)
	assert.InDelta(t, 500.0, got, 1e-9)
}

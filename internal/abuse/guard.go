package abuse

import (
	"time"

	"github.com/errandly/errand-service/internal/repository"
)

// Limits collects every rate-limit threshold in one place. The counts the
// predicates evaluate must be fetched inside the same transaction as the
// mutation they gate, otherwise the check races the window itself.
type Limits struct {
	MaxPendingPerCustomer    int
	MaxDailyAccepts          int
	MaxCustomerCancellations int
	MaxRunnerCancellations   int
	CancellationWindow       time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxPendingPerCustomer:    10,
		MaxDailyAccepts:          15,
		MaxCustomerCancellations: 3,
		MaxRunnerCancellations:   2,
		CancellationWindow:       24 * time.Hour,
	}
}

func (l Limits) CanCreate(pendingCount int) bool {
	return pendingCount < l.MaxPendingPerCustomer
}

func (l Limits) CanAcceptToday(acceptedToday int) bool {
	return acceptedToday < l.MaxDailyAccepts
}

func (l Limits) CanCancel(actor repository.ActorType, recentCancellations int) bool {
	switch actor {
	case repository.ActorCustomer:
		return recentCancellations < l.MaxCustomerCancellations
	case repository.ActorRunner:
		return recentCancellations < l.MaxRunnerCancellations
	default:
		return false
	}
}

// WindowStart returns the lower bound of the trailing cancellation window.
func (l Limits) WindowStart(now time.Time) time.Time {
	return now.Add(-l.CancellationWindow)
}

// LocalMidnight returns the start of the current day in now's location; the
// daily accept cap resets there, not on a rolling 24h window.
func LocalMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// TrustScore is the heuristic used by the fraud-review path: it starts at 1.0
// and decays with recent cancellations and resolved reports against the user.
// Purely advisory, it never gates a lifecycle transition.
func TrustScore(recentCancellations, resolvedReports int) float64 {
	score := 1.0
	score -= 0.1 * float64(recentCancellations)
	score -= 0.25 * float64(resolvedReports)
	if score < 0 {
		return 0
	}
	return score
}

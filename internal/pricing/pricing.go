package pricing

import (
	"errors"
	"math"

	"github.com/errandly/errand-service/internal/repository"
)

var (
	ErrBudgetTooLow     = errors.New("base price is below the minimum")
	ErrNegativeDistance = errors.New("distance cannot be negative")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownUrgency   = errors.New("unknown urgency")
)

// Rates holds every tunable pricing parameter. Thresholds live here rather
// than inline at call sites so ops can adjust them in one place.
type Rates struct {
	MinBasePrice        float64
	CategoryMultipliers map[repository.Category]float64
	UrgencyMultipliers  map[repository.Urgency]float64
	PerKmFee            float64
	PlatformRate        float64
}

func DefaultRates() Rates {
	return Rates{
		MinBasePrice: 5.00,
		CategoryMultipliers: map[repository.Category]float64{
			repository.CategoryDelivery:     1.00,
			repository.CategoryShopping:     1.15,
			repository.CategoryFoodDelivery: 1.20,
			repository.CategoryDocuments:    1.05,
			repository.CategoryOther:        1.00,
		},
		UrgencyMultipliers: map[repository.Urgency]float64{
			repository.UrgencyStandard: 1.00,
			repository.UrgencyUrgent:   1.25,
			repository.UrgencyASAP:     1.50,
		},
		PerKmFee:     5.00,
		PlatformRate: 0.15,
	}
}

// Breakdown decomposes an errand's final price. PlatformFee and
// RunnerEarnings are rounded independently, so their sum may differ from
// FinalPrice - BasePrice by one cent; that drift is accepted, do not
// re-derive one field from another.
type Breakdown struct {
	BasePrice      float64 `json:"base_price"`
	UrgencyFee     float64 `json:"urgency_fee"`
	DistanceFee    float64 `json:"distance_fee"`
	PlatformFee    float64 `json:"platform_fee"`
	RunnerEarnings float64 `json:"runner_earnings"`
	FinalPrice     float64 `json:"final_price"`
}

// Quote computes the fee breakdown for an errand. Pure arithmetic: the same
// inputs always yield the same breakdown, which is what lets completion
// re-derive the numbers persisted at creation.
func Quote(r Rates, basePrice float64, category repository.Category, urgency repository.Urgency, distanceKm float64) (Breakdown, error) {
	if basePrice <= 0 || basePrice < r.MinBasePrice {
		return Breakdown{}, ErrBudgetTooLow
	}
	if distanceKm < 0 {
		return Breakdown{}, ErrNegativeDistance
	}

	catMult, ok := r.CategoryMultipliers[category]
	if !ok {
		return Breakdown{}, ErrUnknownCategory
	}
	urgMult, ok := r.UrgencyMultipliers[urgency]
	if !ok {
		return Breakdown{}, ErrUnknownUrgency
	}

	adjusted := basePrice * catMult
	urgencyFee := adjusted * (urgMult - 1)
	distanceFee := distanceKm * r.PerKmFee

	subtotal := adjusted + urgencyFee + distanceFee
	platformFee := subtotal * r.PlatformRate

	return Breakdown{
		BasePrice:      round2(basePrice),
		UrgencyFee:     round2(urgencyFee),
		DistanceFee:    round2(distanceFee),
		PlatformFee:    round2(platformFee),
		RunnerEarnings: round2(subtotal - platformFee),
		FinalPrice:     round2(subtotal + platformFee),
	}, nil
}

// round2 rounds half-up to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type ErrandStatus string

const (
	StatusPending    ErrandStatus = "pending"
	StatusAccepted   ErrandStatus = "accepted"
	StatusInProgress ErrandStatus = "in_progress"
	StatusCompleted  ErrandStatus = "completed"
	StatusCancelled  ErrandStatus = "cancelled"
)

func (s ErrandStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is absorbing: no transition leaves it.
func (s ErrandStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the errand still occupies a slot in the marketplace.
func (s ErrandStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusInProgress
}

type Category string

const (
	CategoryDelivery     Category = "delivery"
	CategoryShopping     Category = "shopping"
	CategoryFoodDelivery Category = "food_delivery"
	CategoryDocuments    Category = "documents"
	CategoryOther        Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryDelivery, CategoryShopping, CategoryFoodDelivery, CategoryDocuments, CategoryOther:
		return true
	default:
		return false
	}
}

type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyASAP     Urgency = "asap"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyStandard, UrgencyUrgent, UrgencyASAP:
		return true
	default:
		return false
	}
}

type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorRunner   ActorType = "runner"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeRunner   UserType = "runner"
	UserTypeAdmin    UserType = "admin"
)

type Errand struct {
	ID                 string       `json:"id" db:"id"`
	CustomerID         string       `json:"customer_id" db:"customer_id"`
	RunnerID           *string      `json:"runner_id,omitempty" db:"runner_id"`
	Category           Category     `json:"category" db:"category"`
	Urgency            Urgency      `json:"urgency" db:"urgency"`
	LocationFrom       string       `json:"location_from" db:"location_from"`
	LocationTo         string       `json:"location_to" db:"location_to"`
	DistanceKm         float64      `json:"distance_km" db:"distance_km"`
	BasePrice          float64      `json:"base_price" db:"base_price"`
	UrgencyFee         float64      `json:"urgency_fee" db:"urgency_fee"`
	DistanceFee        float64      `json:"distance_fee" db:"distance_fee"`
	PlatformFee        float64      `json:"platform_fee" db:"platform_fee"`
	RunnerEarnings     float64      `json:"runner_earnings" db:"runner_earnings"`
	FinalPrice         float64      `json:"final_price" db:"final_price"`
	Status             ErrandStatus `json:"status" db:"status"`
	AcceptedAt         *time.Time   `json:"accepted_at,omitempty" db:"accepted_at"`
	StartedAt          *time.Time   `json:"started_at,omitempty" db:"started_at"`
	CompletedAt        *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt        *time.Time   `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CancellationReason *string      `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CancelledBy        *ActorType   `json:"cancelled_by,omitempty" db:"cancelled_by"`
	CancelledByID      *string      `json:"cancelled_by_id,omitempty" db:"cancelled_by_id"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

type Runner struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	IsAvailable      bool      `json:"is_available" db:"is_available"`
	IsApproved       bool      `json:"is_approved" db:"is_approved"`
	Rating           float64   `json:"rating" db:"rating"`
	CompletedErrands int       `json:"completed_errands" db:"completed_errands"`
	Earnings         float64   `json:"earnings" db:"earnings"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ErrandTransaction is the settlement record created exactly once per completion.
type ErrandTransaction struct {
	ID             string    `json:"id" db:"id"`
	ErrandID       string    `json:"errand_id" db:"errand_id"`
	CustomerID     string    `json:"customer_id" db:"customer_id"`
	RunnerID       string    `json:"runner_id" db:"runner_id"`
	Amount         float64   `json:"amount" db:"amount"`
	BaseAmount     float64   `json:"base_amount" db:"base_amount"`
	PlatformFee    float64   `json:"platform_fee" db:"platform_fee"`
	RunnerEarnings float64   `json:"runner_earnings" db:"runner_earnings"`
	PaymentStatus  string    `json:"payment_status" db:"payment_status"`
	PaymentMethod  string    `json:"payment_method" db:"payment_method"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

const (
	PaymentStatusPending = "pending"
	PaymentMethodCash    = "cash"
)

type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	UserType  UserType  `json:"user_type" db:"user_type"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

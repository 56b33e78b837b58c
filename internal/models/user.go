package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RiskTolerance values accepted at sign-in. Advice generation treats any
// unrecognized value like RiskAggressive.
const (
	RiskConservative = "conservative"
	RiskBalanced     = "balanced"
	RiskAggressive   = "aggressive"
)

// User represents an advisory client profile
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	RiskTolerance string             `bson:"risk_tolerance" json:"risk_tolerance"`
	Goals         []string           `bson:"goals" json:"goals"`
	Age           *int               `bson:"age,omitempty" json:"age,omitempty"`
	HorizonYears  *int               `bson:"horizon_years,omitempty" json:"horizon_years,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// GoalsLine joins the user's goals for prompt construction
func (u *User) GoalsLine() string {
	return strings.Join(u.Goals, ", ")
}

// Validate validates the user profile
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}

	if u.Email == "" {
		return fmt.Errorf("email is required")
	}

	switch u.RiskTolerance {
	case RiskConservative, RiskBalanced, RiskAggressive:
	default:
		return fmt.Errorf("risk tolerance must be one of conservative, balanced, aggressive")
	}

	if u.Age != nil && *u.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}

	if u.HorizonYears != nil && *u.HorizonYears < 0 {
		return fmt.Errorf("horizon years cannot be negative")
	}

	return nil
}

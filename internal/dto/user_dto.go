package dto

import "advisory-api/internal/models"

// SignInRequest is the payload for POST /users/signin
type SignInRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	RiskTolerance string   `json:"risk_tolerance" binding:"required,oneof=conservative balanced aggressive"`
	Goals         []string `json:"goals"`
	Age           *int     `json:"age" binding:"omitempty,gte=0"`
	HorizonYears  *int     `json:"horizon_years" binding:"omitempty,gte=0"`
}

// ToModel converts the request into a user model
func (r *SignInRequest) ToModel() *models.User {
	goals := r.Goals
	if goals == nil {
		goals = []string{}
	}

	return &models.User{
		Name:          r.Name,
		Email:         r.Email,
		RiskTolerance: r.RiskTolerance,
		Goals:         goals,
		Age:           r.Age,
		HorizonYears:  r.HorizonYears,
	}
}

// UserResponse wraps a stored user document
type UserResponse struct {
	User *models.User `json:"user"`
}

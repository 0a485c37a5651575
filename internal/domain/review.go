package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the moderation state. Unlike orders, moderation moves freely
// between states so an admin can reverse a decision.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ValidReviewStatus rejects anything outside the moderation vocabulary.
func ValidReviewStatus(s ReviewStatus) bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// Review is a customer testimonial. Every submission starts pending and stays
// invisible to the public listing until an admin approves it.
type Review struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerEmail    string
	Rating           int
	ReviewText       string
	Status           ReviewStatus
	ApprovedAt       *time.Time
	ApprovedByAdmin  *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidateRating bounds the star rating.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

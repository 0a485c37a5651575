package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

// SubmitReview accepts a public testimonial. Every submission enters the
// queue as pending; nothing is publicly visible until an admin approves it.
func (s *Service) SubmitReview(ctx context.Context, req SubmitReviewRequest) (ReviewView, error) {
	name, err := domain.RequireText("customerName", req.CustomerName, 100)
	if err != nil {
		return ReviewView{}, err
	}
	email, err := domain.NormalizeEmail(req.CustomerEmail)
	if err != nil {
		return ReviewView{}, err
	}
	if err := domain.ValidateRating(req.Rating); err != nil {
		return ReviewView{}, err
	}
	text, err := domain.RequireText("reviewText", req.ReviewText, 2000)
	if err != nil {
		return ReviewView{}, err
	}

	review, err := s.reviews.Create(ctx, domain.Review{
		CustomerName:  name,
		CustomerEmail: email,
		Rating:        req.Rating,
		ReviewText:    text,
		Status:        domain.ReviewPending,
	})
	if err != nil {
		return ReviewView{}, fmt.Errorf("create review: %w", err)
	}
	return toReviewView(review), nil
}

// ListPublicReviews returns approved reviews only, without customer emails.
func (s *Service) ListPublicReviews(ctx context.Context, limit, offset int) ([]ReviewView, error) {
	reviews, err := s.reviews.ListByStatus(ctx, domain.ReviewApproved, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewView(r))
	}
	return out, nil
}

// ListReviewsForModeration returns the full queue, optionally filtered by
// status. Requires a validated admin principal of any role.
func (s *Service) ListReviewsForModeration(ctx context.Context, admin AdminUserView, statusFilter string, limit, offset int) ([]ModerationReviewView, error) {
	var (
		reviews []domain.Review
		err     error
	)
	if statusFilter == "" {
		reviews, err = s.reviews.ListAll(ctx, limit, offset)
	} else {
		status := domain.ReviewStatus(statusFilter)
		if !domain.ValidReviewStatus(status) {
			return nil, fmt.Errorf("%w: unknown review status %q", domain.ErrInvalidInput, statusFilter)
		}
		reviews, err = s.reviews.ListByStatus(ctx, status, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]ModerationReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toModerationReviewView(r))
	}
	return out, nil
}

// SetReviewStatus moves one review to a new moderation state. Approval
// stamps the acting admin; any other state clears the approval fields.
func (s *Service) SetReviewStatus(ctx context.Context, admin AdminUserView, reviewID uuid.UUID, status domain.ReviewStatus) (ModerationReviewView, error) {
	if err := requireModerator(admin); err != nil {
		return ModerationReviewView{}, err
	}
	if !domain.ValidReviewStatus(status) {
		return ModerationReviewView{}, fmt.Errorf("%w: unknown review status %q", domain.ErrInvalidInput, status)
	}

	approvedBy := approvalStamp(admin, status)
	review, err := s.reviews.SetStatus(ctx, reviewID, status, approvedBy, s.nowFn())
	if err != nil {
		return ModerationReviewView{}, err
	}
	return toModerationReviewView(review), nil
}

// BulkSetReviewStatus applies one moderation decision to many reviews.
func (s *Service) BulkSetReviewStatus(ctx context.Context, admin AdminUserView, reviewIDs []uuid.UUID, status domain.ReviewStatus) (int64, error) {
	if err := requireModerator(admin); err != nil {
		return 0, err
	}
	if len(reviewIDs) == 0 {
		return 0, fmt.Errorf("%w: ids must not be empty", domain.ErrInvalidInput)
	}
	if !domain.ValidReviewStatus(status) {
		return 0, fmt.Errorf("%w: unknown review status %q", domain.ErrInvalidInput, status)
	}
	approvedBy := approvalStamp(admin, status)
	return s.reviews.SetStatusBulk(ctx, reviewIDs, status, approvedBy, s.nowFn())
}

func requireModerator(admin AdminUserView) error {
	u := domain.AdminUser{Role: admin.Role}
	if !u.CanModerate() {
		return domain.ErrForbidden
	}
	return nil
}

func approvalStamp(admin AdminUserView, status domain.ReviewStatus) *uuid.UUID {
	if status != domain.ReviewApproved {
		return nil
	}
	id := admin.ID
	return &id
}

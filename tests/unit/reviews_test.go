package unit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

func submitTestReview(t *testing.T, f *fixture, name string, rating int) application.ReviewView {
	t.Helper()
	review, err := f.service.SubmitReview(context.Background(), application.SubmitReviewRequest{
		CustomerName:  name,
		CustomerEmail: "customer@example.com",
		Rating:        rating,
		ReviewText:    "Absolutely worth it, the lighting module alone paid for itself.",
	})
	if err != nil {
		t.Fatalf("submit review failed: %v", err)
	}
	return review
}

func TestSubmitReviewStartsPendingAndHiddenPublicly(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	review := submitTestReview(t, f, "Dana", 5)
	if review.Status != domain.ReviewPending {
		t.Fatalf("expected pending status, got %s", review.Status)
	}

	public, err := f.service.ListPublicReviews(ctx, 50, 0)
	if err != nil {
		t.Fatalf("list public reviews failed: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("pending review must not be publicly visible, got %d", len(public))
	}

	if _, err := f.service.SetReviewStatus(ctx, f.adminView(), review.ID, domain.ReviewApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	public, err = f.service.ListPublicReviews(ctx, 50, 0)
	if err != nil {
		t.Fatalf("list public reviews failed: %v", err)
	}
	if len(public) != 1 || public[0].ID != review.ID {
		t.Fatalf("approved review should be publicly visible")
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	cases := []application.SubmitReviewRequest{
		{CustomerName: "", CustomerEmail: "a@b.com", Rating: 5, ReviewText: "text"},
		{CustomerName: "Dana", CustomerEmail: "not-an-email", Rating: 5, ReviewText: "text"},
		{CustomerName: "Dana", CustomerEmail: "a@b.com", Rating: 0, ReviewText: "text"},
		{CustomerName: "Dana", CustomerEmail: "a@b.com", Rating: 6, ReviewText: "text"},
		{CustomerName: "Dana", CustomerEmail: "a@b.com", Rating: 5, ReviewText: ""},
	}
	for i, req := range cases {
		if _, err := f.service.SubmitReview(ctx, req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestApprovalStampsAdminAndRejectionClearsIt(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	review := submitTestReview(t, f, "Dana", 4)

	approved, err := f.service.SetReviewStatus(ctx, f.adminView(), review.ID, domain.ReviewApproved)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.ApprovedAt == nil || approved.ApprovedByAdmin == nil || *approved.ApprovedByAdmin != f.adminID {
		t.Fatalf("approval should stamp time and acting admin, got %+v", approved)
	}

	rejected, err := f.service.SetReviewStatus(ctx, f.adminView(), review.ID, domain.ReviewRejected)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.ApprovedAt != nil || rejected.ApprovedByAdmin != nil {
		t.Fatalf("rejection should clear approval fields, got %+v", rejected)
	}
}

func TestViewerCannotModerate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	review := submitTestReview(t, f, "Dana", 4)

	viewer := application.AdminUserView{ID: uuid.New(), Email: "viewer@luxevisionshop.com", Role: domain.RoleViewer}
	if _, err := f.service.SetReviewStatus(ctx, viewer, review.ID, domain.ReviewApproved); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for viewer, got %v", err)
	}
	if _, err := f.service.BulkSetReviewStatus(ctx, viewer, []uuid.UUID{review.ID}, domain.ReviewApproved); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for viewer bulk update, got %v", err)
	}

	// Listing the queue is allowed for any validated role.
	if _, err := f.service.ListReviewsForModeration(ctx, viewer, "", 50, 0); err != nil {
		t.Fatalf("viewer should be able to list the queue: %v", err)
	}
}

func TestBulkSetReviewStatus(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	first := submitTestReview(t, f, "Dana", 5)
	second := submitTestReview(t, f, "Riley", 4)
	missing := uuid.New()

	updated, err := f.service.BulkSetReviewStatus(ctx, f.adminView(), []uuid.UUID{first.ID, second.ID, missing}, domain.ReviewApproved)
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated reviews, got %d", updated)
	}

	queue, err := f.service.ListReviewsForModeration(ctx, f.adminView(), string(domain.ReviewApproved), 50, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 approved reviews, got %d", len(queue))
	}
}

func TestModerationStatusFilterRejectsUnknown(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.service.ListReviewsForModeration(context.Background(), f.adminView(), "archived", 50, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}
}

package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
)

// ReviewService lists and edits the reviews of a restaurant or menu item.
type ReviewService interface {
	List(ctx context.Context, target model.ReviewTarget, targetID string) ([]model.Review, error)
	Create(ctx context.Context, userID string, target model.ReviewTarget, targetID string, rating int, comment string) ([]model.Review, error)
	Delete(ctx context.Context, userID string, target model.ReviewTarget, targetID, reviewID string) ([]model.Review, error)
}

type reviewService struct {
	backend ReviewBackend
	log     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(backend ReviewBackend, log zerolog.Logger) ReviewService {
	return &reviewService{
		backend: backend,
		log:     log.With().Str("component", "reviews").Logger(),
	}
}

// List returns the current reviews of the target.
func (s *reviewService) List(ctx context.Context, target model.ReviewTarget, targetID string) ([]model.Review, error) {
	var (
		reviews []model.Review
		err     error
	)
	switch target {
	case model.ReviewTargetRestaurant:
		reviews, err = s.backend.RestaurantReviews(ctx, targetID)
	case model.ReviewTargetMenuItem:
		reviews, err = s.backend.MenuItemReviews(ctx, targetID)
	default:
		return nil, fmt.Errorf("unknown review target %q", target)
	}
	if err != nil {
		return nil, fmt.Errorf("list %s reviews: %w", target, err)
	}
	return reviews, nil
}

// Create posts a review and returns the refreshed list.
func (s *reviewService) Create(ctx context.Context, userID string, target model.ReviewTarget, targetID string, rating int, comment string) ([]model.Review, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)

	var err error
	switch target {
	case model.ReviewTargetRestaurant:
		err = s.backend.CreateRestaurantReview(ctx, userID, targetID, rating, comment)
	case model.ReviewTargetMenuItem:
		err = s.backend.CreateMenuItemReview(ctx, userID, targetID, rating, comment)
	default:
		return nil, fmt.Errorf("unknown review target %q", target)
	}
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.List(ctx, target, targetID)
}

// Delete removes the requester's own review and returns the refreshed list.
func (s *reviewService) Delete(ctx context.Context, userID string, target model.ReviewTarget, targetID, reviewID string) ([]model.Review, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	reviews, err := s.List(ctx, target, targetID)
	if err != nil {
		return nil, err
	}

	var found *model.Review
	for i := range reviews {
		if reviews[i].ID == reviewID {
			found = &reviews[i]
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, apperrors.ErrNotFound)
	}
	if !CanDelete(*found, userID) {
		return nil, apperrors.ErrReviewNotOwned
	}

	if err := s.backend.DeleteReview(ctx, reviewID); err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	s.log.Info().Str("review_id", reviewID).Str("user_id", userID).Msg("review deleted")
	return s.List(ctx, target, targetID)
}

// CanDelete reports whether userID authored the review.
func CanDelete(r model.Review, userID string) bool {
	return userID != "" && r.User.ID == userID
}

// Average is the arithmetic mean of the ratings, 0 for none.
func Average(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// FormatAverage renders the mean with one decimal.
func FormatAverage(reviews []model.Review) string {
	if len(reviews) == 0 {
		return "No ratings yet"
	}
	return fmt.Sprintf("%.1f", Average(reviews))
}

// RenderStars draws floor(rating) filled stars padded to five.
func RenderStars(rating float64) string {
	full := int(math.Floor(rating))
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

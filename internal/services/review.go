package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

var errReviewNotFound = apperrors.NewNotFoundError("Review not found.")

type ReviewService struct {
	store CollectionSource
}

func NewReviewService(store CollectionSource) *ReviewService {
	return &ReviewService{store: store}
}

// List returns all reviews, or those written by email.
func (s *ReviewService) List(ctx context.Context, email string) ([]models.Review, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	return findMany[models.Review](ctx, cols.Reviews, filter, newestFirst())
}

func (s *ReviewService) Create(ctx context.Context, review *models.Review, subjectEmail string) (*models.InsertResult, error) {
	if strings.TrimSpace(review.Email) == "" {
		review.Email = subjectEmail
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	res, err := cols.Reviews.InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}
	return models.NewInsertResult(res), nil
}

func (s *ReviewService) Update(ctx context.Context, id string, patch models.ReviewPatch) (*models.UpdateResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	res, err := setByID(ctx, cols.Reviews, id, patch.SetDocument(), errReviewNotFound)
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	res, err := deleteByID(ctx, cols.Reviews, id, errReviewNotFound)
	if err != nil {
		return nil, err
	}
	return models.NewDeleteResult(res), nil
}

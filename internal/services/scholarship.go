package services

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

var errScholarshipNotFound = apperrors.NewNotFoundError("Scholarship not found.")

// ScholarshipQuery holds the optional list filters of GET /scholarships.
type ScholarshipQuery struct {
	Email   string
	Country string
	Search  string
}

// Filter composes the query parameters with AND. Search is a
// case-insensitive substring match over name, university and degree.
func (q ScholarshipQuery) Filter() bson.M {
	filter := bson.M{}
	if q.Email != "" {
		filter["studentsApplied.email"] = q.Email
	}
	if q.Country != "" {
		filter["country"] = q.Country
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"scholarshipName": pattern},
			bson.M{"universityName": pattern},
			bson.M{"degree": pattern},
		}
	}
	return filter
}

type ScholarshipService struct {
	store CollectionSource
}

func NewScholarshipService(store CollectionSource) *ScholarshipService {
	return &ScholarshipService{store: store}
}

func (s *ScholarshipService) List(ctx context.Context, q ScholarshipQuery) ([]models.Scholarship, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}
	return findMany[models.Scholarship](ctx, cols.Scholarships, q.Filter(), newestFirst())
}

func (s *ScholarshipService) Get(ctx context.Context, id string) (*models.Scholarship, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}
	return findByID[models.Scholarship](ctx, cols.Scholarships, id, errScholarshipNotFound)
}

func (s *ScholarshipService) Create(ctx context.Context, scholarship *models.Scholarship) (*models.InsertResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	scholarship.ID = primitive.NewObjectID()
	scholarship.StudentsApplied = nil
	scholarship.CreatedAt = time.Now()

	res, err := cols.Scholarships.InsertOne(ctx, scholarship)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("scholarship", scholarship.ScholarshipName).Msg("scholarship created")
	return models.NewInsertResult(res), nil
}

func (s *ScholarshipService) Update(ctx context.Context, id string, patch models.ScholarshipPatch) (*models.UpdateResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	res, err := setByID(ctx, cols.Scholarships, id, patch.SetDocument(), errScholarshipNotFound)
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

func (s *ScholarshipService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	res, err := deleteByID(ctx, cols.Scholarships, id, errScholarshipNotFound)
	if err != nil {
		return nil, err
	}
	return models.NewDeleteResult(res), nil
}

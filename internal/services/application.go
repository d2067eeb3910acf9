package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

var (
	errApplicationNotFound = apperrors.NewNotFoundError("Application not found.")
	errPaymentNotFound     = apperrors.NewNotFoundError("Application not found")
	errAlreadyPaid         = apperrors.NewNoOpError("Payment status already updated")
)

type ApplicationService struct {
	store CollectionSource
}

func NewApplicationService(store CollectionSource) *ApplicationService {
	return &ApplicationService{store: store}
}

// List returns all applications, or those of one applicant.
func (s *ApplicationService) List(ctx context.Context, email string) ([]models.Application, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if email != "" {
		filter["userEmail"] = email
	}
	return findMany[models.Application](ctx, cols.Applications, filter, newestFirst())
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}
	return findByID[models.Application](ctx, cols.Applications, id, errApplicationNotFound)
}

// Create stores a new unpaid, pending application. subjectEmail is used when
// the body carries no applicant email. The applicant is then recorded on the
// scholarship; a failure there is logged only.
func (s *ApplicationService) Create(ctx context.Context, app *models.Application, subjectEmail string) (*models.InsertResult, error) {
	if strings.TrimSpace(app.UserEmail) == "" {
		app.UserEmail = subjectEmail
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	app.ID = primitive.NewObjectID()
	app.PaymentStatus = models.PaymentUnpaid
	app.EnrollmentStatus = models.EnrollmentPending
	app.Feedback = ""
	app.CreatedAt = time.Now()

	res, err := cols.Applications.InsertOne(ctx, app)
	if err != nil {
		return nil, err
	}

	if scholarshipID, err := primitive.ObjectIDFromHex(app.ScholarshipID); err == nil {
		_, err := cols.Scholarships.UpdateOne(ctx,
			bson.M{"_id": scholarshipID},
			bson.M{"$addToSet": bson.M{"studentsApplied": models.Applicant{Email: app.UserEmail}}},
		)
		if err != nil {
			logger.Warn().Err(err).Str("scholarshipId", app.ScholarshipID).Msg("failed to record applicant on scholarship")
		}
	}

	logger.Info().Str("email", app.UserEmail).Str("scholarshipId", app.ScholarshipID).Msg("application created")
	return models.NewInsertResult(res), nil
}

// Update applies moderator feedback and enrollment status changes.
func (s *ApplicationService) Update(ctx context.Context, id string, patch models.ApplicationPatch) (*models.UpdateResult, error) {
	if patch.EnrollmentStatus != nil && *patch.EnrollmentStatus != "" && !patch.EnrollmentStatus.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid enrollment status")
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	res, err := setByID(ctx, cols.Applications, id, patch.SetDocument(), errApplicationNotFound)
	if err != nil {
		return nil, err
	}
	return models.NewUpdateResult(res), nil
}

// MarkPaid flips paymentStatus to paid. A second call is a no-op error.
func (s *ApplicationService) MarkPaid(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return err
	}

	res, err := cols.Applications.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"paymentStatus": models.PaymentPaid}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errPaymentNotFound
	}
	if res.ModifiedCount == 0 {
		return errAlreadyPaid
	}

	logger.Info().Str("applicationId", id).Msg("application marked paid")
	return nil
}

// Delete removes an application. Ownership is not checked.
func (s *ApplicationService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	res, err := deleteByID(ctx, cols.Applications, id, errApplicationNotFound)
	if err != nil {
		return nil, err
	}
	return models.NewDeleteResult(res), nil
}

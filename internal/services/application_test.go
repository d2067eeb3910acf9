package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

func TestApplicationServiceCreate(t *testing.T) {
	mt := newMock(t)

	mt.Run("server-side defaults and subject email", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)
		app := &models.Application{
			ScholarshipID:    primitive.NewObjectID().Hex(),
			PaymentStatus:    models.PaymentPaid,
			EnrollmentStatus: models.EnrollmentCompleted,
			Feedback:         "self-approved",
		}

		res, err := NewApplicationService(sourceFor(mt)).Create(context.Background(), app, "stu@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, app.ID, res.InsertedID)
		assert.Equal(mt, "stu@example.com", app.UserEmail)
		assert.Equal(mt, models.PaymentUnpaid, app.PaymentStatus)
		assert.Equal(mt, models.EnrollmentPending, app.EnrollmentStatus)
		assert.Empty(mt, app.Feedback)
	})

	mt.Run("applicant bookkeeping failure is tolerated", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 8000, Message: "atlas error"}),
		)
		app := &models.Application{ScholarshipID: primitive.NewObjectID().Hex(), UserEmail: "own@example.com"}

		_, err := NewApplicationService(sourceFor(mt)).Create(context.Background(), app, "stu@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "own@example.com", app.UserEmail)
	})
}

func TestApplicationServiceMarkPaid(t *testing.T) {
	mt := newMock(t)
	id := primitive.NewObjectID()

	mt.Run("first call pays", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		assert.NoError(mt, NewApplicationService(sourceFor(mt)).MarkPaid(context.Background(), id.Hex()))
	})

	mt.Run("second call is a no-op", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		err := NewApplicationService(sourceFor(mt)).MarkPaid(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, apperrors.ErrNoOp)
		assert.Equal(mt, "Payment status already updated", apperrors.PublicMessage(err))
	})

	mt.Run("unknown application", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := NewApplicationService(sourceFor(mt)).MarkPaid(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
		assert.Equal(mt, "Application not found", apperrors.PublicMessage(err))
	})
}

func TestApplicationServiceUpdate(t *testing.T) {
	mt := newMock(t)
	id := primitive.NewObjectID()

	mt.Run("moderator feedback", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		status := models.EnrollmentProcessing
		res, err := NewApplicationService(sourceFor(mt)).Update(context.Background(), id.Hex(),
			models.ApplicationPatch{Feedback: strPtr("looks good"), EnrollmentStatus: &status})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.ModifiedCount)
	})

	t.Run("unknown enrollment status", func(t *testing.T) {
		src := &failingSource{}
		status := models.EnrollmentStatus("accepted")
		_, err := NewApplicationService(src).Update(context.Background(), id.Hex(),
			models.ApplicationPatch{EnrollmentStatus: &status})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		assert.Zero(t, src.calls)
	})
}

func TestApplicationServiceListAndDelete(t *testing.T) {
	mt := newMock(t)
	id := primitive.NewObjectID()

	mt.Run("list by applicant", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.applications", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "userEmail", Value: "stu@example.com"}, {Key: "paymentStatus", Value: "paid"}},
		))
		apps, err := NewApplicationService(sourceFor(mt)).List(context.Background(), "stu@example.com")
		require.NoError(mt, err)
		require.Len(mt, apps, 1)
		assert.Equal(mt, models.PaymentPaid, apps[0].PaymentStatus)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		_, err := NewApplicationService(sourceFor(mt)).Delete(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})
}

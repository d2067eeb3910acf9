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

func strPtr(s string) *string { return &s }

func TestScholarshipQueryFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, ScholarshipQuery{}.Filter())

	f := ScholarshipQuery{Email: "s@example.com", Country: "Japan"}.Filter()
	assert.Equal(t, "s@example.com", f["studentsApplied.email"])
	assert.Equal(t, "Japan", f["country"])
	assert.NotContains(t, f, "$or")

	f = ScholarshipQuery{Search: "c++ (MSc)"}.Filter()
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	want := primitive.Regex{Pattern: `c\+\+ \(MSc\)`, Options: "i"}
	assert.Equal(t, bson.M{"scholarshipName": want}, or[0])
	assert.Equal(t, bson.M{"universityName": want}, or[1])
	assert.Equal(t, bson.M{"degree": want}, or[2])
}

func TestScholarshipServiceList(t *testing.T) {
	mt := newMock(t)

	mt.Run("search with no match", func(mt *mtest.T) {
		svc := NewScholarshipService(sourceFor(mt))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.scholarships", mtest.FirstBatch))

		list, err := svc.List(context.Background(), ScholarshipQuery{Search: "zzz"})
		require.NoError(mt, err)
		assert.Equal(mt, []models.Scholarship{}, list)
	})

	mt.Run("decodes documents", func(mt *mtest.T) {
		svc := NewScholarshipService(sourceFor(mt))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.scholarships", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "scholarshipName", Value: "Global Excellence"},
				{Key: "country", Value: "Japan"},
				{Key: "applicationFee", Value: 45.5},
				{Key: "studentsApplied", Value: bson.A{bson.D{{Key: "email", Value: "s@example.com"}}}},
			},
		))

		list, err := svc.List(context.Background(), ScholarshipQuery{Country: "Japan"})
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, "Global Excellence", list[0].ScholarshipName)
		assert.Equal(mt, models.Amount(45.5), list[0].ApplicationFee)
		assert.Equal(mt, []models.Applicant{{Email: "s@example.com"}}, list[0].StudentsApplied)
	})
}

func TestScholarshipServiceGet(t *testing.T) {
	mt := newMock(t)
	id := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.scholarships", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "universityName", Value: "Kyoto"}},
		))
		s, err := NewScholarshipService(sourceFor(mt)).Get(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, s.ID)
		assert.Equal(mt, "Kyoto", s.UniversityName)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.scholarships", mtest.FirstBatch))
		_, err := NewScholarshipService(sourceFor(mt)).Get(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := NewScholarshipService(sourceFor(mt)).Get(context.Background(), "123")
		assert.ErrorIs(mt, err, apperrors.ErrInvalidID)
	})
}

func TestScholarshipServiceCreate(t *testing.T) {
	mt := newMock(t)

	mt.Run("drops client applicants", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := &models.Scholarship{ScholarshipName: "Global", StudentsApplied: []models.Applicant{{Email: "x@example.com"}}}

		res, err := NewScholarshipService(sourceFor(mt)).Create(context.Background(), s)
		require.NoError(mt, err)
		assert.Equal(mt, s.ID, res.InsertedID)
		assert.Nil(mt, s.StudentsApplied)
		assert.False(mt, s.CreatedAt.IsZero())
	})
}

func TestScholarshipServiceUpdate(t *testing.T) {
	mt := newMock(t)
	id := primitive.NewObjectID()

	mt.Run("applies truthy fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		res, err := NewScholarshipService(sourceFor(mt)).Update(context.Background(), id.Hex(),
			models.ScholarshipPatch{City: strPtr("Osaka"), Country: strPtr("")})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.MatchedCount)
		assert.Equal(mt, int64(1), res.ModifiedCount)
	})

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		_, err := NewScholarshipService(sourceFor(mt)).Update(context.Background(), id.Hex(),
			models.ScholarshipPatch{City: strPtr("Osaka")})
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})

	mt.Run("only falsy fields", func(mt *mtest.T) {
		_, err := NewScholarshipService(sourceFor(mt)).Update(context.Background(), id.Hex(),
			models.ScholarshipPatch{City: strPtr("")})
		assert.ErrorIs(mt, err, apperrors.ErrBadRequest)
		assert.Equal(mt, "No valid fields provided", apperrors.PublicMessage(err))
	})
}

func TestScholarshipServiceDelete(t *testing.T) {
	mt := newMock(t)
	id := primitive.NewObjectID()

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		res, err := NewScholarshipService(sourceFor(mt)).Delete(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.DeletedCount)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		_, err := NewScholarshipService(sourceFor(mt)).Delete(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
		assert.Equal(mt, "Scholarship not found.", apperrors.PublicMessage(err))
	})
}

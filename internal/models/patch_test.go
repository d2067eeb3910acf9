package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func decodePatch(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v))
}

func TestScholarshipPatchSkipsFalsyFields(t *testing.T) {
	var p ScholarshipPatch
	decodePatch(t, `{"scholarshipName":"Fulbright","universityName":"","worldRank":0,"tuitionFees":1200.5,"city":null,"unknown":"x"}`, &p)

	assert.Equal(t, bson.M{
		"scholarshipName": "Fulbright",
		"tuitionFees":     1200.5,
	}, p.SetDocument())
}

func TestScholarshipPatchAllFields(t *testing.T) {
	var p ScholarshipPatch
	decodePatch(t, `{
		"scholarshipName":"A","universityName":"B","image":"C","country":"D","city":"E","degree":"F",
		"scholarshipCategory":"G","subjectCategory":"H","worldRank":12,"tuitionFees":100,"applicationFee":50
	}`, &p)

	set := p.SetDocument()
	assert.Len(t, set, 11)
	assert.Equal(t, 12, set["worldRank"])
	assert.Equal(t, 50.0, set["applicationFee"])
}

func TestScholarshipPatchEmpty(t *testing.T) {
	var p ScholarshipPatch
	decodePatch(t, `{"city":"","applicationFee":0}`, &p)
	assert.Empty(t, p.SetDocument())
}

func TestApplicationPatch(t *testing.T) {
	var p ApplicationPatch
	decodePatch(t, `{"feedback":"","enrollmentStatus":"processing","paymentStatus":"paid"}`, &p)
	assert.Equal(t, bson.M{"enrollmentStatus": EnrollmentProcessing}, p.SetDocument())

	var empty ApplicationPatch
	decodePatch(t, `{"paymentStatus":"paid"}`, &empty)
	assert.Empty(t, empty.SetDocument())
}

func TestReviewPatch(t *testing.T) {
	var p ReviewPatch
	decodePatch(t, `{"ratingPoint":4.5,"reviewComment":"great"}`, &p)
	assert.Equal(t, bson.M{"ratingPoint": 4.5, "reviewComment": "great"}, p.SetDocument())

	var zero ReviewPatch
	decodePatch(t, `{"ratingPoint":0,"reviewComment":""}`, &zero)
	assert.Empty(t, zero.SetDocument())
}

func TestUserPatch(t *testing.T) {
	var p UserPatch
	decodePatch(t, `{"role":"moderator","email":"x@y.z"}`, &p)
	assert.Equal(t, bson.M{"role": RoleModerator}, p.SetDocument())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestEnrollmentStatusValid(t *testing.T) {
	assert.True(t, EnrollmentPending.Valid())
	assert.True(t, EnrollmentRejected.Valid())
	assert.False(t, EnrollmentStatus("accepted").Valid())
}

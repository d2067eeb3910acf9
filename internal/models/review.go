package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipID   string             `bson:"scholarshipId" json:"scholarshipId"`
	ScholarshipName string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName  string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserImage       string             `bson:"userImage,omitempty" json:"userImage,omitempty"`
	Email           string             `bson:"email" json:"email"`
	RatingPoint     float64            `bson:"ratingPoint" json:"ratingPoint"`
	ReviewComment   string             `bson:"reviewComment" json:"reviewComment"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReviewPatch is the body of PATCH /reviews/{id}.
type ReviewPatch struct {
	RatingPoint   *float64 `json:"ratingPoint"`
	ReviewComment *string  `json:"reviewComment"`
}

// SetDocument returns the $set document for the truthy fields.
func (p ReviewPatch) SetDocument() bson.M {
	set := bson.M{}
	setNumber(set, "ratingPoint", p.RatingPoint)
	setString(set, "reviewComment", p.ReviewComment)
	return set
}

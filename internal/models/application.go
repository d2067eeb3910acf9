package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type EnrollmentStatus string

const (
	EnrollmentPending    EnrollmentStatus = "pending"
	EnrollmentProcessing EnrollmentStatus = "processing"
	EnrollmentCompleted  EnrollmentStatus = "completed"
	EnrollmentRejected   EnrollmentStatus = "rejected"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentProcessing, EnrollmentCompleted, EnrollmentRejected:
		return true
	}
	return false
}

type Application struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipID       string             `bson:"scholarshipId" json:"scholarshipId"`
	UserEmail           string             `bson:"userEmail" json:"userEmail"`
	UserName            string             `bson:"userName,omitempty" json:"userName,omitempty"`
	ScholarshipName     string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName      string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	UniversityCity      string             `bson:"universityCity,omitempty" json:"universityCity,omitempty"`
	UniversityCountry   string             `bson:"universityCountry,omitempty" json:"universityCountry,omitempty"`
	ScholarshipCategory string             `bson:"scholarshipCategory,omitempty" json:"scholarshipCategory,omitempty"`
	SubjectCategory     string             `bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	Degree              string             `bson:"degree,omitempty" json:"degree,omitempty"`
	ApplicationFees     Amount             `bson:"applicationFees,omitempty" json:"applicationFees,omitempty"`
	ServiceCharge       Amount             `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	PaymentStatus       PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	EnrollmentStatus    EnrollmentStatus   `bson:"enrollmentStatus" json:"enrollmentStatus"`
	Feedback            string             `bson:"feedback" json:"feedback"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}

// ApplicationPatch is the moderator body of PATCH /applications/{id}.
type ApplicationPatch struct {
	Feedback         *string           `json:"feedback"`
	EnrollmentStatus *EnrollmentStatus `json:"enrollmentStatus"`
}

// SetDocument returns the $set document for the truthy fields.
func (p ApplicationPatch) SetDocument() bson.M {
	set := bson.M{}
	setString(set, "feedback", p.Feedback)
	if p.EnrollmentStatus != nil && *p.EnrollmentStatus != "" {
		set["enrollmentStatus"] = *p.EnrollmentStatus
	}
	return set
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Applicant is the reference embedded in Scholarship.StudentsApplied.
type Applicant struct {
	Email string `bson:"email" json:"email"`
}

type Scholarship struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipName     string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName      string             `bson:"universityName" json:"universityName"`
	Image               string             `bson:"image,omitempty" json:"image,omitempty"`
	Country             string             `bson:"country" json:"country"`
	City                string             `bson:"city,omitempty" json:"city,omitempty"`
	Degree              string             `bson:"degree" json:"degree"`
	ScholarshipCategory string             `bson:"scholarshipCategory,omitempty" json:"scholarshipCategory,omitempty"`
	SubjectCategory     string             `bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	WorldRank           Rank               `bson:"worldRank,omitempty" json:"worldRank,omitempty"`
	TuitionFees         Amount             `bson:"tuitionFees,omitempty" json:"tuitionFees,omitempty"`
	ApplicationFee      Amount             `bson:"applicationFee" json:"applicationFee"`
	ServiceCharge       Amount             `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	Deadline            string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	PostedBy            string             `bson:"postedBy,omitempty" json:"postedBy,omitempty"`
	StudentsApplied     []Applicant        `bson:"studentsApplied,omitempty" json:"studentsApplied,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}

// ScholarshipPatch is the body of PATCH /scholarships/{id}.
type ScholarshipPatch struct {
	ScholarshipName     *string `json:"scholarshipName"`
	UniversityName      *string `json:"universityName"`
	Image               *string `json:"image"`
	Country             *string `json:"country"`
	City                *string `json:"city"`
	Degree              *string `json:"degree"`
	ScholarshipCategory *string `json:"scholarshipCategory"`
	SubjectCategory     *string `json:"subjectCategory"`
	WorldRank           *Rank   `json:"worldRank"`
	TuitionFees         *Amount `json:"tuitionFees"`
	ApplicationFee      *Amount `json:"applicationFee"`
}

// SetDocument returns the $set document for the truthy fields.
func (p ScholarshipPatch) SetDocument() bson.M {
	set := bson.M{}
	setString(set, "scholarshipName", p.ScholarshipName)
	setString(set, "universityName", p.UniversityName)
	setString(set, "image", p.Image)
	setString(set, "country", p.Country)
	setString(set, "city", p.City)
	setString(set, "degree", p.Degree)
	setString(set, "scholarshipCategory", p.ScholarshipCategory)
	setString(set, "subjectCategory", p.SubjectCategory)
	if p.WorldRank != nil && *p.WorldRank != 0 {
		set["worldRank"] = int(*p.WorldRank)
	}
	setAmount(set, "tuitionFees", p.TuitionFees)
	setAmount(set, "applicationFee", p.ApplicationFee)
	return set
}

// Falsy values (empty string, zero) are never written.
func setString(set bson.M, key string, v *string) {
	if v != nil && *v != "" {
		set[key] = *v
	}
}

func setNumber(set bson.M, key string, v *float64) {
	if v != nil && *v != 0 {
		set[key] = *v
	}
}

func setAmount(set bson.M, key string, v *Amount) {
	if v != nil && *v != 0 {
		set[key] = float64(*v)
	}
}

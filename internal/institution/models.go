package institution

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CourseModeOnline  = "Online"
	CourseModeOffline = "Offline"
	CourseModeHybrid  = "Hybrid"
)

type Institution struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstitutionName    string             `bson:"institution_name" json:"institutionName"`
	EmailAddress       string             `bson:"email_address" json:"emailAddress"`
	Logo               string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Website            string             `bson:"website,omitempty" json:"website,omitempty"`
	RegistrationNumber string             `bson:"registration_number" json:"registrationNumber"`
	AdminID            primitive.ObjectID `bson:"admin_id" json:"adminId"`
	Consent            bool               `bson:"consent" json:"consent"`
	Admission          bool               `bson:"admission" json:"admission"`
	Hostel             bool               `bson:"hostel" json:"hostel"`
	CreatedAt          time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Course struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstitutionID    primitive.ObjectID `bson:"institution_id" json:"institutionId"`
	CourseName       string             `bson:"course_name" json:"courseName"`
	Category         string             `bson:"category" json:"category"`
	Duration         int                `bson:"duration" json:"duration"`
	Eligibility      string             `bson:"eligibility" json:"eligibility"`
	Mode             string             `bson:"mode" json:"mode"`
	Fees             float64            `bson:"fees" json:"fees"`
	Syllabus         []string           `bson:"syllabus" json:"syllabus"`
	AdmissionProcess string             `bson:"admission_process" json:"admissionProcess"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	Website          string             `bson:"website" json:"website"`
	Brochure         string             `bson:"brochure,omitempty" json:"brochure,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CourseCategory is the per-institution list of category names a course may
// belong to. One document per institution.
type CourseCategory struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstitutionID  primitive.ObjectID `bson:"institution_id" json:"institutionId"`
	CourseCategory []string           `bson:"course_category" json:"courseCategory"`
}

type RegisterInstitutionRequest struct {
	InstitutionName    string `json:"institutionName" validate:"required,min=2,max=72"`
	AdminName          string `json:"adminName" validate:"required,min=2,max=72"`
	EmailAddress       string `json:"emailAddress" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	Logo               string `json:"logo" validate:"omitempty"`
	Website            string `json:"website" validate:"omitempty"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Consent            bool   `json:"consent" validate:"required"`
}

type UpdateDetailsRequest struct {
	Website   *string `json:"website"`
	Admission *bool   `json:"admission"`
	Hostel    *bool   `json:"hostel"`
}

type CourseCategoryRequest struct {
	CourseCategory string `json:"courseCategory" validate:"required"`
}

type CourseRequest struct {
	CourseName       string   `json:"courseName" validate:"required"`
	Category         string   `json:"category" validate:"required"`
	Duration         int      `json:"duration" validate:"required,min=1"`
	Eligibility      string   `json:"eligibility" validate:"required"`
	Mode             string   `json:"mode" validate:"required,oneof=Online Offline Hybrid"`
	Fees             float64  `json:"fees" validate:"required,min=0"`
	Syllabus         []string `json:"syllabus" validate:"required,dive,required"`
	AdmissionProcess string   `json:"admissionProcess" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone" validate:"required"`
	Website          string   `json:"website" validate:"required"`
	Brochure         string   `json:"brochure"`
}

// InstitutionListItem is the public id+name projection.
type InstitutionListItem struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	InstitutionName string             `bson:"institution_name" json:"institutionName"`
}

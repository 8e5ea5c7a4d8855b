package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress points awarded when a profile section is populated for the
// first time. The counter on the user record only ever goes up.
const (
	PointsPhone         = 2
	PointsDateOfBirth   = 2
	PointsGender        = 2
	PointsRegion        = 2
	PointsLanguages     = 5
	PointsSkills        = 5
	PointsSocialLinks   = 2
	PointsAchievement   = 20
	PointsCertification = 20
	PointsEducation     = 40
)

type SocialLink struct {
	Platform string `bson:"platform" json:"platform" validate:"required"`
	URL      string `bson:"url" json:"url" validate:"required,url"`
}

// BasicInfo is the single per-user profile document. An empty record is
// created at registration so later updates are always read-modify-write.
type BasicInfo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth string             `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Region      string             `bson:"region,omitempty" json:"region,omitempty"`
	Languages   []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	Skills      []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	SocialLinks []SocialLink       `bson:"social_links,omitempty" json:"socialLinks,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Education struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	Institution  string             `bson:"institution" json:"institution"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"field_of_study" json:"fieldOfStudy"`
	StartYear    int                `bson:"start_year" json:"startYear"`
	EndYear      int                `bson:"end_year,omitempty" json:"endYear,omitempty"`
	Grade        string             `bson:"grade,omitempty" json:"grade,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Achievement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	AwardedAt   string             `bson:"awarded_at,omitempty" json:"awardedAt,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Certification struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"userId"`
	Name           string             `bson:"name" json:"name"`
	IssuedBy       string             `bson:"issued_by" json:"issuedBy"`
	IssuedAt       string             `bson:"issued_at,omitempty" json:"issuedAt,omitempty"`
	CertificateURL string             `bson:"certificate_url,omitempty" json:"certificateUrl,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Overview bundles the whole profile for the detail endpoint.
type Overview struct {
	BasicInfo      *BasicInfo       `json:"basicInfo"`
	Education      []*Education     `json:"education"`
	Achievements   []*Achievement   `json:"achievements"`
	Certifications []*Certification `json:"certifications"`
	Progress       int              `json:"progress"`
}

type UpdateBasicInfoRequest struct {
	Phone       *string      `json:"phone" validate:"omitempty,min=7,max=20"`
	DateOfBirth *string      `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string      `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Region      *string      `json:"region" validate:"omitempty,max=100"`
	Languages   []string     `json:"languages" validate:"omitempty,dive,required"`
	Skills      []string     `json:"skills" validate:"omitempty,dive,required"`
	SocialLinks []SocialLink `json:"socialLinks" validate:"omitempty,dive"`
}

type EducationRequest struct {
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	StartYear    int    `json:"startYear" validate:"required,min=1900"`
	EndYear      int    `json:"endYear" validate:"omitempty,min=1900"`
	Grade        string `json:"grade"`
}

type AchievementRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	AwardedAt   string `json:"awardedAt" validate:"omitempty,datetime=2006-01-02"`
}

type CertificationRequest struct {
	Name           string `json:"name" validate:"required"`
	IssuedBy       string `json:"issuedBy" validate:"required"`
	IssuedAt       string `json:"issuedAt" validate:"omitempty,datetime=2006-01-02"`
	CertificateURL string `json:"certificateUrl" validate:"omitempty,url"`
}

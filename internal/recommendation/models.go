package recommendation

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExamScore struct {
	Exam  string  `json:"exam" validate:"required"`
	Score float64 `json:"score" validate:"required,min=0"`
}

type PreferenceRequest struct {
	EducationLevel string      `json:"educationLevel" validate:"required"`
	DegreeCategory string      `json:"degreeCategory" validate:"required"`
	Budget         float64     `json:"budget" validate:"required,min=0"`
	HostelRequired bool        `json:"hostelRequired"`
	ExamScores     []ExamScore `json:"examScores" validate:"omitempty,dive"`
}

// Candidate is a course joined to the institution facts the ranker needs.
type Candidate struct {
	CourseID        primitive.ObjectID `bson:"course_id" json:"courseId"`
	CourseName      string             `bson:"course_name" json:"courseName"`
	Category        string             `bson:"category" json:"category"`
	Fees            float64            `bson:"fees" json:"fees"`
	Duration        int                `bson:"duration" json:"duration"`
	Mode            string             `bson:"mode" json:"mode"`
	InstitutionID   primitive.ObjectID `bson:"institution_id" json:"institutionId"`
	InstitutionName string             `bson:"institution_name" json:"institutionName"`
	Hostel          bool               `bson:"hostel" json:"hostel"`
}

// RankedPair is one entry of the ranker's ordered answer.
type RankedPair struct {
	InstitutionID string `json:"institutionId"`
	CourseID      string `json:"courseId"`
}

package counselling

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPendingApproval = "PendingApproval"
	StatusApproved        = "Approved"
	StatusRejected        = "Rejected"
	StatusCancelled       = "Cancelled"
	StatusCompleted       = "Completed"
)

// StatusUpcoming is a virtual filter value that expands to the set of
// statuses a user still has ahead of them.
const StatusUpcoming = "Upcoming"

// Session is one counselling meeting between a user and an institution.
// IsApproved stays nil until the institution decides; MeetingURL is only
// set while the session is approved.
type Session struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"userId"`
	InstitutionID     primitive.ObjectID `bson:"institution_id" json:"institutionId"`
	Status            string             `bson:"status" json:"status"`
	Date              time.Time          `bson:"date" json:"date"`
	TimeOfDay         string             `bson:"time_of_day" json:"timeOfDay"`
	Purpose           string             `bson:"purpose" json:"purpose"`
	IsApproved        *bool              `bson:"is_approved" json:"isApproved"`
	DisapprovalReason string             `bson:"disapproval_reason,omitempty" json:"disapprovalReason,omitempty"`
	MeetingURL        string             `bson:"meeting_url,omitempty" json:"meetingUrl,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SessionView is a Session with the referenced display names resolved.
type SessionView struct {
	Session         `bson:",inline"`
	UserName        string `json:"userName"`
	InstitutionName string `json:"institutionName"`
}

// Filter selects sessions by whichever fields are set.
type Filter struct {
	UserID        *primitive.ObjectID
	InstitutionID *primitive.ObjectID
	Statuses      []string
	Limit         int64
}

// DashboardSummary is the pair of bounded lists shown on the user dashboard.
type DashboardSummary struct {
	Upcoming  []*SessionView `json:"upcoming"`
	Completed []*SessionView `json:"completed"`
}

type BookRequest struct {
	InstitutionID string `json:"institutionId" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeOfDay     string `json:"timeOfDay" validate:"required"`
	Purpose       string `json:"purpose" validate:"required,max=500"`
}

type DecisionRequest struct {
	Approval          *bool  `json:"approval" validate:"required"`
	DisapprovalReason string `json:"disapprovalReason" validate:"omitempty,max=500"`
}

type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeOfDay string `json:"timeOfDay" validate:"required"`
}

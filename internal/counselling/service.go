package counselling

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
	"CareerGo/internal/auth"
	"CareerGo/internal/config"
	"CareerGo/internal/institution"
	"CareerGo/internal/mailer"
)

// UserDirectory resolves user records for existence and ownership checks.
type UserDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
}

// InstitutionDirectory resolves institution records referenced by sessions.
type InstitutionDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*institution.Institution, error)
}

type Service struct {
	sessions     Store
	users        UserDirectory
	institutions InstitutionDirectory
	email        config.EmailSender
	meetings     MeetingLinkGenerator
	logger       *zap.SugaredLogger
}

func NewService(sessions *Repository, users UserDirectory, institutions InstitutionDirectory, email *config.EmailService, meetings MeetingLinkGenerator, logger *zap.SugaredLogger) *Service {
	return &Service{sessions: sessions, users: users, institutions: institutions, email: email, meetings: meetings, logger: logger}
}

// NewServiceWith wires the service against explicit collaborators. Used by tests.
func NewServiceWith(sessions Store, users UserDirectory, institutions InstitutionDirectory, email config.EmailSender, meetings MeetingLinkGenerator, logger *zap.SugaredLogger) *Service {
	return &Service{sessions: sessions, users: users, institutions: institutions, email: email, meetings: meetings, logger: logger}
}

func (s *Service) Book(ctx context.Context, callerID, institutionID primitive.ObjectID, date time.Time, timeOfDay, purpose string) (*Session, error) {
	inst, err := s.institutions.FindByID(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	session := &Session{
		UserID:        callerID,
		InstitutionID: institutionID,
		Status:        StatusPendingApproval,
		Date:          date,
		TimeOfDay:     timeOfDay,
		Purpose:       purpose,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.email.SendEmail([]string{inst.EmailAddress}, "New Counselling Session Request",
		mailer.MeetingRequestTemplate(user.Name, auth.FormatDate(date), timeOfDay)); err != nil {
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// Decide records the institution admin's approval or rejection of a pending
// session. Approval mints the meeting link; rejection stores the reason.
func (s *Service) Decide(ctx context.Context, callerID, sessionID primitive.ObjectID, approval bool, disapprovalReason string) (*Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if session == nil {
		return nil, apperr.NotFound("Session")
	}
	if session.Status == StatusCancelled {
		return nil, apperr.InvalidRequest("Session has been cancelled")
	}

	inst, err := s.institutions.FindByID(ctx, session.InstitutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}
	if inst.AdminID != callerID {
		return nil, apperr.Unauthorized()
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	decision := approval
	session.IsApproved = &decision
	if approval {
		session.Status = StatusApproved
		session.MeetingURL = s.meetings.Generate(session.Date, session.TimeOfDay)
		session.DisapprovalReason = ""
	} else {
		session.Status = StatusRejected
		session.DisapprovalReason = disapprovalReason
		session.MeetingURL = ""
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperr.Internal(err)
	}

	// The decision concerns the requesting user, so the notification goes
	// to them rather than back to the institution's own inbox.
	var subject, body string
	if approval {
		subject = "Counselling Session Approved"
		body = mailer.MeetingApprovalTemplate(auth.FormatDate(session.Date), session.TimeOfDay, session.MeetingURL)
	} else {
		subject = "Counselling Session Rejected"
		body = mailer.MeetingRejectionTemplate(auth.FormatDate(session.Date), session.TimeOfDay, session.DisapprovalReason)
	}
	if err := s.email.SendEmail([]string{user.EmailAddress}, subject, body); err != nil {
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// GetAll lists sessions matching whichever of the optional user, institution
// and status filters are provided. The virtual status "Upcoming" expands to
// the approved and pending sets.
func (s *Service) GetAll(ctx context.Context, userID, institutionID *primitive.ObjectID, status string) ([]*SessionView, error) {
	filter := Filter{UserID: userID, InstitutionID: institutionID}
	switch status {
	case "":
	case StatusUpcoming:
		filter.Statuses = []string{StatusApproved, StatusPendingApproval}
	default:
		filter.Statuses = []string{status}
	}

	sessions, err := s.sessions.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.populate(ctx, sessions)
}

func (s *Service) Cancel(ctx context.Context, callerID, sessionID primitive.ObjectID) error {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return apperr.Internal(err)
	}
	if caller == nil {
		return apperr.NotFound("User")
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return apperr.Internal(err)
	}
	if session == nil {
		return apperr.NotFound("Session")
	}
	if session.UserID != callerID {
		return apperr.Unauthorized()
	}
	if session.Status == StatusCompleted {
		return apperr.InvalidRequest("Completed sessions cannot be cancelled")
	}

	session.Status = StatusCancelled
	if err := s.sessions.Update(ctx, session); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) Reschedule(ctx context.Context, callerID, sessionID primitive.ObjectID, newDate time.Time, newTime string) (*Session, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if caller == nil {
		return nil, apperr.NotFound("User")
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if session == nil {
		return nil, apperr.NotFound("Session")
	}

	owner := session.UserID == callerID
	sameInstitution := caller.Institution.IsAssociated &&
		caller.Institution.InstitutionID != nil &&
		*caller.Institution.InstitutionID == session.InstitutionID
	if !owner && !sameInstitution {
		return nil, apperr.Unauthorized()
	}
	if session.IsApproved != nil && !*session.IsApproved {
		return nil, apperr.InvalidRequest("Rejected sessions cannot be rescheduled")
	}

	session.Date = newDate
	session.TimeOfDay = newTime
	session.Status = StatusPendingApproval
	session.IsApproved = nil
	session.MeetingURL = ""
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperr.Internal(err)
	}
	return session, nil
}

func (s *Service) Complete(ctx context.Context, callerInstitutionID, sessionID primitive.ObjectID) (*Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if session == nil {
		return nil, apperr.NotFound("Session")
	}
	if session.IsApproved == nil || !*session.IsApproved {
		return nil, apperr.InvalidRequest("Meeting is not yet approved")
	}
	if session.InstitutionID != callerInstitutionID {
		return nil, apperr.Unauthorized()
	}
	if session.Status == StatusCompleted {
		return nil, apperr.InvalidRequest("Session is already completed")
	}

	session.Status = StatusCompleted
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// GetBookedDates returns the dates of every session of the user that is not
// rejected or cancelled. Clients use it to steer people away from slots they
// already hold.
func (s *Service) GetBookedDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	sessions, err := s.sessions.Find(ctx, Filter{
		UserID:   &userID,
		Statuses: []string{StatusPendingApproval, StatusApproved, StatusCompleted},
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	dates := make([]time.Time, 0, len(sessions))
	for _, session := range sessions {
		dates = append(dates, session.Date)
	}
	return dates, nil
}

func (s *Service) GetDashboardSummary(ctx context.Context, userID primitive.ObjectID) (*DashboardSummary, error) {
	upcoming, err := s.sessions.Find(ctx, Filter{
		UserID:   &userID,
		Statuses: []string{StatusApproved, StatusPendingApproval},
		Limit:    5,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	completed, err := s.sessions.Find(ctx, Filter{
		UserID:   &userID,
		Statuses: []string{StatusCompleted},
		Limit:    5,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	upcomingViews, err := s.populate(ctx, upcoming)
	if err != nil {
		return nil, err
	}
	completedViews, err := s.populate(ctx, completed)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{Upcoming: upcomingViews, Completed: completedViews}, nil
}

// populate resolves the referenced display names, caching lookups across the
// batch so shared references hit the store once.
func (s *Service) populate(ctx context.Context, sessions []*Session) ([]*SessionView, error) {
	userNames := make(map[primitive.ObjectID]string)
	institutionNames := make(map[primitive.ObjectID]string)

	views := make([]*SessionView, 0, len(sessions))
	for _, session := range sessions {
		userName, ok := userNames[session.UserID]
		if !ok {
			user, err := s.users.FindByID(ctx, session.UserID)
			if err != nil {
				return nil, apperr.Internal(err)
			}
			if user != nil {
				userName = user.Name
			}
			userNames[session.UserID] = userName
		}

		instName, ok := institutionNames[session.InstitutionID]
		if !ok {
			inst, err := s.institutions.FindByID(ctx, session.InstitutionID)
			if err != nil {
				return nil, apperr.Internal(err)
			}
			if inst != nil {
				instName = inst.InstitutionName
			}
			institutionNames[session.InstitutionID] = instName
		}

		views = append(views, &SessionView{
			Session:         *session,
			UserName:        userName,
			InstitutionName: instName,
		})
	}
	return views, nil
}

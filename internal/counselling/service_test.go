package counselling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
	"CareerGo/internal/auth"
	"CareerGo/internal/institution"
)

type memSessionStore struct {
	sessions map[primitive.ObjectID]*Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[primitive.ObjectID]*Session)}
}

func (m *memSessionStore) Create(_ context.Context, session *Session) error {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *memSessionStore) FindByID(_ context.Context, id primitive.ObjectID) (*Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (m *memSessionStore) Find(_ context.Context, filter Filter) ([]*Session, error) {
	var out []*Session
	for _, session := range m.sessions {
		if filter.UserID != nil && session.UserID != *filter.UserID {
			continue
		}
		if filter.InstitutionID != nil && session.InstitutionID != *filter.InstitutionID {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if session.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		copied := *session
		out = append(out, &copied)
		if filter.Limit > 0 && int64(len(out)) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *memSessionStore) Update(_ context.Context, session *Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

type memUserDirectory struct {
	users map[primitive.ObjectID]*auth.User
}

func (m *memUserDirectory) FindByID(_ context.Context, id primitive.ObjectID) (*auth.User, error) {
	return m.users[id], nil
}

type memInstitutionDirectory struct {
	institutions map[primitive.ObjectID]*institution.Institution
}

func (m *memInstitutionDirectory) FindByID(_ context.Context, id primitive.ObjectID) (*institution.Institution, error) {
	return m.institutions[id], nil
}

type recordingEmail struct {
	recipients [][]string
	subjects   []string
}

func (r *recordingEmail) SendEmail(to []string, subject, _ string) error {
	r.recipients = append(r.recipients, to)
	r.subjects = append(r.subjects, subject)
	return nil
}

type stubLinkGenerator struct{}

func (stubLinkGenerator) Generate(date time.Time, timeOfDay string) string {
	return "https://meet.example.com/" + date.Format("2006-01-02") + "-" + timeOfDay
}

type fixture struct {
	service       *Service
	store         *memSessionStore
	email         *recordingEmail
	userID        primitive.ObjectID
	adminID       primitive.ObjectID
	institutionID primitive.ObjectID
	users         *memUserDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()
	institutionID := primitive.NewObjectID()

	users := &memUserDirectory{users: map[primitive.ObjectID]*auth.User{
		userID: {
			ID:           userID,
			Name:         "Asha Verma",
			EmailAddress: "asha@example.com",
			Role:         auth.RoleUser,
		},
		adminID: {
			ID:           adminID,
			Name:         "Dean Office",
			EmailAddress: "dean@northfield.edu",
			Role:         auth.RoleInstitutionAdmin,
			Institution:  auth.InstitutionLink{IsAssociated: true, InstitutionID: &institutionID},
		},
	}}
	institutions := &memInstitutionDirectory{institutions: map[primitive.ObjectID]*institution.Institution{
		institutionID: {
			ID:              institutionID,
			InstitutionName: "Northfield University",
			EmailAddress:    "admissions@northfield.edu",
			AdminID:         adminID,
		},
	}}

	store := newMemSessionStore()
	email := &recordingEmail{}
	service := NewServiceWith(store, users, institutions, email, stubLinkGenerator{}, zap.NewNop().Sugar())

	return &fixture{
		service:       service,
		store:         store,
		email:         email,
		userID:        userID,
		adminID:       adminID,
		institutionID: institutionID,
		users:         users,
	}
}

func (f *fixture) book(t *testing.T) *Session {
	t.Helper()
	session, err := f.service.Book(context.Background(), f.userID, f.institutionID,
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "10:00", "Admissions")
	require.NoError(t, err)
	return session
}

func (f *fixture) approve(t *testing.T, sessionID primitive.ObjectID) *Session {
	t.Helper()
	session, err := f.service.Decide(context.Background(), f.adminID, sessionID, true, "")
	require.NoError(t, err)
	return session
}

func TestBookCreatesPendingSession(t *testing.T) {
	f := newFixture(t)

	session := f.book(t)

	assert.Equal(t, StatusPendingApproval, session.Status)
	assert.Nil(t, session.IsApproved)
	assert.Empty(t, session.MeetingURL)
	require.Len(t, f.email.recipients, 1)
	assert.Equal(t, []string{"admissions@northfield.edu"}, f.email.recipients[0])
}

func TestBookUnknownInstitution(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Book(context.Background(), f.userID, primitive.NewObjectID(),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "10:00", "Admissions")

	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
}

func TestApproveSetsMeetingURL(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)

	approved := f.approve(t, session.ID)

	assert.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.IsApproved)
	assert.True(t, *approved.IsApproved)
	assert.NotEmpty(t, approved.MeetingURL)
	// decision email goes to the requesting user
	require.Len(t, f.email.recipients, 2)
	assert.Equal(t, []string{"asha@example.com"}, f.email.recipients[1])
}

func TestRejectStoresReason(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)

	rejected, err := f.service.Decide(context.Background(), f.adminID, session.ID, false, "Slot unavailable")
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.IsApproved)
	assert.False(t, *rejected.IsApproved)
	assert.Equal(t, "Slot unavailable", rejected.DisapprovalReason)
	assert.Empty(t, rejected.MeetingURL)
}

func TestDecideRequiresInstitutionAdmin(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)

	_, err := f.service.Decide(context.Background(), f.userID, session.ID, true, "")

	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestDecideOnCancelledSession(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	require.NoError(t, f.service.Cancel(context.Background(), f.userID, session.ID))

	_, err := f.service.Decide(context.Background(), f.adminID, session.ID, false, "")

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestRescheduleResetsApprovedSession(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	f.approve(t, session.ID)

	rescheduled, err := f.service.Reschedule(context.Background(), f.userID, session.ID,
		time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), "11:00")
	require.NoError(t, err)

	assert.Equal(t, StatusPendingApproval, rescheduled.Status)
	assert.Nil(t, rescheduled.IsApproved)
	assert.Empty(t, rescheduled.MeetingURL)
	assert.Equal(t, "11:00", rescheduled.TimeOfDay)
}

func TestRescheduleRejectedSessionFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	_, err := f.service.Decide(context.Background(), f.adminID, session.ID, false, "No")
	require.NoError(t, err)

	_, err = f.service.Reschedule(context.Background(), f.userID, session.ID,
		time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), "11:00")

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestRescheduleByInstitutionMember(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)

	rescheduled, err := f.service.Reschedule(context.Background(), f.adminID, session.ID,
		time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), "14:00")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingApproval, rescheduled.Status)
}

func TestRescheduleByStrangerFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)

	strangerID := primitive.NewObjectID()
	f.users.users[strangerID] = &auth.User{ID: strangerID, Name: "Other", Role: auth.RoleUser}

	_, err := f.service.Reschedule(context.Background(), strangerID, session.ID,
		time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), "14:00")

	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestCancelByNonOwnerFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)

	strangerID := primitive.NewObjectID()
	f.users.users[strangerID] = &auth.User{ID: strangerID, Name: "Other", Role: auth.RoleUser}

	err := f.service.Cancel(context.Background(), strangerID, session.ID)

	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestCancelCompletedSessionFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	f.approve(t, session.ID)
	_, err := f.service.Complete(context.Background(), f.institutionID, session.ID)
	require.NoError(t, err)

	err = f.service.Cancel(context.Background(), f.userID, session.ID)

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestCompleteUnapprovedSessionFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	_, err := f.service.Decide(context.Background(), f.adminID, session.ID, false, "No")
	require.NoError(t, err)

	_, err = f.service.Complete(context.Background(), f.institutionID, session.ID)

	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
	assert.Equal(t, "Meeting is not yet approved", apperr.MessageOf(err))
}

func TestCompleteWrongInstitutionFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	f.approve(t, session.ID)

	_, err := f.service.Complete(context.Background(), primitive.NewObjectID(), session.ID)

	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestCompleteTwiceFails(t *testing.T) {
	f := newFixture(t)
	session := f.book(t)
	f.approve(t, session.ID)

	completed, err := f.service.Complete(context.Background(), f.institutionID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	_, err = f.service.Complete(context.Background(), f.institutionID, session.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestGetAllUpcomingExpandsStatuses(t *testing.T) {
	f := newFixture(t)
	pending := f.book(t)
	approved := f.book(t)
	f.approve(t, approved.ID)
	rejected := f.book(t)
	_, err := f.service.Decide(context.Background(), f.adminID, rejected.ID, false, "No")
	require.NoError(t, err)

	views, err := f.service.GetAll(context.Background(), &f.userID, nil, StatusUpcoming)
	require.NoError(t, err)

	require.Len(t, views, 2)
	ids := map[primitive.ObjectID]bool{}
	for _, view := range views {
		ids[view.ID] = true
		assert.Equal(t, "Asha Verma", view.UserName)
		assert.Equal(t, "Northfield University", view.InstitutionName)
	}
	assert.True(t, ids[pending.ID])
	assert.True(t, ids[approved.ID])
}

func TestGetBookedDatesExcludesRejectedAndCancelled(t *testing.T) {
	f := newFixture(t)
	kept := f.book(t)
	rejected := f.book(t)
	_, err := f.service.Decide(context.Background(), f.adminID, rejected.ID, false, "No")
	require.NoError(t, err)
	cancelled := f.book(t)
	require.NoError(t, f.service.Cancel(context.Background(), f.userID, cancelled.ID))

	dates, err := f.service.GetBookedDates(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, dates, 1)
	assert.Equal(t, kept.Date, dates[0])
}

func TestDashboardSummaryLimits(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		session := f.book(t)
		f.approve(t, session.ID)
		_, err := f.service.Complete(context.Background(), f.institutionID, session.ID)
		require.NoError(t, err)
	}
	for i := 0; i < 6; i++ {
		f.book(t)
	}

	summary, err := f.service.GetDashboardSummary(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Len(t, summary.Upcoming, 5)
	assert.Len(t, summary.Completed, 5)
}

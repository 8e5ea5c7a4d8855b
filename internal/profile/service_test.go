package profile

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
)

type memProfileStore struct {
	basicInfo      map[primitive.ObjectID]*BasicInfo
	education      map[primitive.ObjectID]*Education
	achievements   map[primitive.ObjectID]*Achievement
	certifications map[primitive.ObjectID]*Certification
	progress       map[primitive.ObjectID]int
	images         map[primitive.ObjectID]string
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{
		basicInfo:      make(map[primitive.ObjectID]*BasicInfo),
		education:      make(map[primitive.ObjectID]*Education),
		achievements:   make(map[primitive.ObjectID]*Achievement),
		certifications: make(map[primitive.ObjectID]*Certification),
		progress:       make(map[primitive.ObjectID]int),
		images:         make(map[primitive.ObjectID]string),
	}
}

func (m *memProfileStore) FindBasicInfo(_ context.Context, userID primitive.ObjectID) (*BasicInfo, error) {
	for _, info := range m.basicInfo {
		if info.UserID == userID {
			copied := *info
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memProfileStore) SaveBasicInfo(_ context.Context, info *BasicInfo) error {
	if info.ID.IsZero() {
		info.ID = primitive.NewObjectID()
	}
	copied := *info
	m.basicInfo[info.ID] = &copied
	return nil
}

func (m *memProfileStore) ListEducation(_ context.Context, userID primitive.ObjectID) ([]*Education, error) {
	var out []*Education
	for _, record := range m.education {
		if record.UserID == userID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memProfileStore) FindEducation(_ context.Context, id primitive.ObjectID) (*Education, error) {
	record, ok := m.education[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *memProfileStore) CreateEducation(_ context.Context, record *Education) error {
	record.ID = primitive.NewObjectID()
	copied := *record
	m.education[record.ID] = &copied
	return nil
}

func (m *memProfileStore) UpdateEducation(_ context.Context, record *Education) error {
	copied := *record
	m.education[record.ID] = &copied
	return nil
}

func (m *memProfileStore) DeleteEducation(_ context.Context, id primitive.ObjectID) error {
	delete(m.education, id)
	return nil
}

func (m *memProfileStore) ListAchievements(_ context.Context, userID primitive.ObjectID) ([]*Achievement, error) {
	var out []*Achievement
	for _, record := range m.achievements {
		if record.UserID == userID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memProfileStore) FindAchievement(_ context.Context, id primitive.ObjectID) (*Achievement, error) {
	record, ok := m.achievements[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *memProfileStore) CreateAchievement(_ context.Context, record *Achievement) error {
	record.ID = primitive.NewObjectID()
	copied := *record
	m.achievements[record.ID] = &copied
	return nil
}

func (m *memProfileStore) UpdateAchievement(_ context.Context, record *Achievement) error {
	copied := *record
	m.achievements[record.ID] = &copied
	return nil
}

func (m *memProfileStore) DeleteAchievement(_ context.Context, id primitive.ObjectID) error {
	delete(m.achievements, id)
	return nil
}

func (m *memProfileStore) ListCertifications(_ context.Context, userID primitive.ObjectID) ([]*Certification, error) {
	var out []*Certification
	for _, record := range m.certifications {
		if record.UserID == userID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memProfileStore) FindCertification(_ context.Context, id primitive.ObjectID) (*Certification, error) {
	record, ok := m.certifications[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *memProfileStore) CreateCertification(_ context.Context, record *Certification) error {
	record.ID = primitive.NewObjectID()
	copied := *record
	m.certifications[record.ID] = &copied
	return nil
}

func (m *memProfileStore) UpdateCertification(_ context.Context, record *Certification) error {
	copied := *record
	m.certifications[record.ID] = &copied
	return nil
}

func (m *memProfileStore) DeleteCertification(_ context.Context, id primitive.ObjectID) error {
	delete(m.certifications, id)
	return nil
}

func (m *memProfileStore) IncrementProgress(_ context.Context, userID primitive.ObjectID, points int) error {
	m.progress[userID] += points
	return nil
}

func (m *memProfileStore) GetProgress(_ context.Context, userID primitive.ObjectID) (int, error) {
	return m.progress[userID], nil
}

func (m *memProfileStore) SetProfileImage(_ context.Context, userID primitive.ObjectID, url string) error {
	m.images[userID] = url
	return nil
}

type memFiles struct {
	saved map[string]string
}

func (m *memFiles) Save(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	url := "https://files.example.com/" + key
	m.saved[key] = url
	return url, nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	delete(m.saved, key)
	return nil
}

func (m *memFiles) URL(key string) string {
	return "https://files.example.com/" + key
}

func strPtr(s string) *string { return &s }

func TestEnsureBasicInfoIsIdempotent(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	require.NoError(t, service.EnsureBasicInfo(context.Background(), userID))
	require.NoError(t, service.EnsureBasicInfo(context.Background(), userID))

	assert.Len(t, store.basicInfo, 1)
}

func TestBasicInfoFirstPopulationAwardsPoints(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()
	require.NoError(t, service.EnsureBasicInfo(context.Background(), userID))

	_, err := service.UpdateBasicInfo(context.Background(), userID, UpdateBasicInfoRequest{
		Phone:       strPtr("5550100200"),
		DateOfBirth: strPtr("2002-03-15"),
		Gender:      strPtr("Female"),
		Region:      strPtr("Karnataka"),
		Languages:   []string{"English", "Kannada"},
		Skills:      []string{"Python"},
		SocialLinks: []SocialLink{{Platform: "LinkedIn", URL: "https://linkedin.com/in/asha"}},
	})
	require.NoError(t, err)

	// 2+2+2+2 + 5 + 5 + 2
	assert.Equal(t, 20, store.progress[userID])
}

func TestBasicInfoRepeatUpdateAwardsNothing(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	_, err := service.UpdateBasicInfo(context.Background(), userID, UpdateBasicInfoRequest{Phone: strPtr("5550100200")})
	require.NoError(t, err)
	assert.Equal(t, PointsPhone, store.progress[userID])

	_, err = service.UpdateBasicInfo(context.Background(), userID, UpdateBasicInfoRequest{Phone: strPtr("5550999999")})
	require.NoError(t, err)
	assert.Equal(t, PointsPhone, store.progress[userID])
}

func TestPartialUpdateOnlyAwardsNewFields(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	_, err := service.UpdateBasicInfo(context.Background(), userID, UpdateBasicInfoRequest{Phone: strPtr("5550100200")})
	require.NoError(t, err)
	_, err = service.UpdateBasicInfo(context.Background(), userID, UpdateBasicInfoRequest{
		Phone:  strPtr("5550100200"),
		Region: strPtr("Kerala"),
	})
	require.NoError(t, err)

	assert.Equal(t, PointsPhone+PointsRegion, store.progress[userID])
}

func TestFirstEducationAwardsForty(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	req := EducationRequest{Institution: "Northfield", Degree: "BSc", FieldOfStudy: "CS", StartYear: 2020}
	_, err := service.AddEducation(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, PointsEducation, store.progress[userID])

	_, err = service.AddEducation(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, PointsEducation, store.progress[userID])
}

func TestFirstAchievementAndCertificationAwards(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	_, err := service.AddAchievement(context.Background(), userID, AchievementRequest{Title: "Dean's List"})
	require.NoError(t, err)
	_, err = service.AddAchievement(context.Background(), userID, AchievementRequest{Title: "Hackathon"})
	require.NoError(t, err)
	_, err = service.AddCertification(context.Background(), userID, CertificationRequest{Name: "AWS CP", IssuedBy: "AWS"})
	require.NoError(t, err)

	assert.Equal(t, PointsAchievement+PointsCertification, store.progress[userID])
}

func TestProgressNeverDecrements(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	record, err := service.AddEducation(context.Background(), userID, EducationRequest{
		Institution: "Northfield", Degree: "BSc", FieldOfStudy: "CS", StartYear: 2020,
	})
	require.NoError(t, err)
	require.NoError(t, service.DeleteEducation(context.Background(), userID, record.ID))

	assert.Equal(t, PointsEducation, store.progress[userID])
}

func TestUpdateProfileImageStoresURL(t *testing.T) {
	store := newMemProfileStore()
	files := &memFiles{}
	service := NewServiceWith(store, files, zap.NewNop().Sugar())
	userID := primitive.NewObjectID()

	url, err := service.UpdateProfileImage(context.Background(), userID, "photo.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(url, "avatar.png"))
	assert.Equal(t, url, store.images[userID])
}

func TestDeleteRecordOwnedByAnotherUserFails(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	record, err := service.AddEducation(context.Background(), owner, EducationRequest{
		Institution: "Northfield", Degree: "BSc", FieldOfStudy: "CS", StartYear: 2020,
	})
	require.NoError(t, err)

	err = service.DeleteEducation(context.Background(), stranger, record.ID)
	require.Error(t, err)
}

func TestUpdateAchievementReplacesFields(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	owner := primitive.NewObjectID()

	record, err := service.AddAchievement(context.Background(), owner, AchievementRequest{
		Title: "Regional science fair", Description: "Second place", AwardedAt: "2023-03-10",
	})
	require.NoError(t, err)

	updated, err := service.UpdateAchievement(context.Background(), owner, record.ID, AchievementRequest{
		Title: "Regional science fair", Description: "First place", AwardedAt: "2023-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "First place", updated.Description)

	records, err := service.GetAchievements(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "First place", records[0].Description)
}

func TestUpdateAchievementOwnedByAnotherUserFails(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	record, err := service.AddAchievement(context.Background(), owner, AchievementRequest{
		Title: "Hackathon winner", AwardedAt: "2024-01-20",
	})
	require.NoError(t, err)

	_, err = service.UpdateAchievement(context.Background(), stranger, record.ID, AchievementRequest{
		Title: "Hijacked", AwardedAt: "2024-01-20",
	})
	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))

	records, err := service.GetAchievements(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hackathon winner", records[0].Title)
}

func TestUpdateCertificationReplacesFields(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	owner := primitive.NewObjectID()

	record, err := service.AddCertification(context.Background(), owner, CertificationRequest{
		Name: "AWS Cloud Practitioner", IssuedBy: "Amazon", IssuedAt: "2023-06-01",
	})
	require.NoError(t, err)

	updated, err := service.UpdateCertification(context.Background(), owner, record.ID, CertificationRequest{
		Name: "AWS Solutions Architect", IssuedBy: "Amazon", IssuedAt: "2024-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "AWS Solutions Architect", updated.Name)
	assert.Equal(t, "2024-06-01", updated.IssuedAt)
}

func TestUpdateCertificationOwnedByAnotherUserFails(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	record, err := service.AddCertification(context.Background(), owner, CertificationRequest{
		Name: "IELTS", IssuedBy: "British Council", IssuedAt: "2023-09-15",
	})
	require.NoError(t, err)

	_, err = service.UpdateCertification(context.Background(), stranger, record.ID, CertificationRequest{
		Name: "Forged", IssuedBy: "Nobody", IssuedAt: "2023-09-15",
	})
	require.Error(t, err)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestUpdateAchievementUnknownRecordIsNotFound(t *testing.T) {
	store := newMemProfileStore()
	service := NewServiceWith(store, nil, zap.NewNop().Sugar())

	_, err := service.UpdateAchievement(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), AchievementRequest{
		Title: "Anything", AwardedAt: "2024-02-02",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
}

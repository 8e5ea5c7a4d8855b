package profile

import (
	"context"
	"io"
	"path"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
	"CareerGo/internal/storage"
)

type Service struct {
	store  Store
	files  storage.Storage
	logger *zap.SugaredLogger
}

func NewService(store *Repository, files storage.Storage, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, files: files, logger: logger}
}

// NewServiceWith wires the service against explicit collaborators. Used by tests.
func NewServiceWith(store Store, files storage.Storage, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, files: files, logger: logger}
}

// EnsureBasicInfo creates the empty per-user profile document if it does not
// exist yet. Registration calls this so every user has a record to update.
func (s *Service) EnsureBasicInfo(ctx context.Context, userID primitive.ObjectID) error {
	existing, err := s.store.FindBasicInfo(ctx, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if existing != nil {
		return nil
	}
	if err := s.store.SaveBasicInfo(ctx, &BasicInfo{UserID: userID}); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) GetOverview(ctx context.Context, userID primitive.ObjectID) (*Overview, error) {
	info, err := s.store.FindBasicInfo(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if info == nil {
		info = &BasicInfo{UserID: userID}
	}
	education, err := s.store.ListEducation(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	achievements, err := s.store.ListAchievements(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	certifications, err := s.store.ListCertifications(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Overview{
		BasicInfo:      info,
		Education:      education,
		Achievements:   achievements,
		Certifications: certifications,
		Progress:       progress,
	}, nil
}

// UpdateBasicInfo applies the partial update and awards progress points for
// every field that goes from empty to populated. Fields that already held a
// value earn nothing even if the value changes.
func (s *Service) UpdateBasicInfo(ctx context.Context, userID primitive.ObjectID, req UpdateBasicInfoRequest) (*BasicInfo, error) {
	info, err := s.store.FindBasicInfo(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if info == nil {
		info = &BasicInfo{UserID: userID}
	}

	points := 0
	if req.Phone != nil && *req.Phone != "" {
		if info.Phone == "" {
			points += PointsPhone
		}
		info.Phone = *req.Phone
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		if info.DateOfBirth == "" {
			points += PointsDateOfBirth
		}
		info.DateOfBirth = *req.DateOfBirth
	}
	if req.Gender != nil && *req.Gender != "" {
		if info.Gender == "" {
			points += PointsGender
		}
		info.Gender = *req.Gender
	}
	if req.Region != nil && *req.Region != "" {
		if info.Region == "" {
			points += PointsRegion
		}
		info.Region = *req.Region
	}
	if len(req.Languages) > 0 {
		if len(info.Languages) == 0 {
			points += PointsLanguages
		}
		info.Languages = req.Languages
	}
	if len(req.Skills) > 0 {
		if len(info.Skills) == 0 {
			points += PointsSkills
		}
		info.Skills = req.Skills
	}
	if len(req.SocialLinks) > 0 {
		if len(info.SocialLinks) == 0 {
			points += PointsSocialLinks
		}
		info.SocialLinks = req.SocialLinks
	}

	if err := s.store.SaveBasicInfo(ctx, info); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.store.IncrementProgress(ctx, userID, points); err != nil {
		return nil, apperr.Internal(err)
	}
	return info, nil
}

func (s *Service) UpdateProfileImage(ctx context.Context, userID primitive.ObjectID, filename, contentType string, file io.Reader) (string, error) {
	key := path.Join("profiles", userID.Hex(), "avatar"+path.Ext(filename))
	url, err := s.files.Save(ctx, key, file, contentType)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if err := s.store.SetProfileImage(ctx, userID, url); err != nil {
		return "", apperr.Internal(err)
	}
	return url, nil
}

func (s *Service) AddEducation(ctx context.Context, userID primitive.ObjectID, req EducationRequest) (*Education, error) {
	existing, err := s.store.ListEducation(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	record := &Education{
		UserID:       userID,
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
		Grade:        req.Grade,
	}
	if err := s.store.CreateEducation(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}

	if len(existing) == 0 {
		if err := s.store.IncrementProgress(ctx, userID, PointsEducation); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return record, nil
}

func (s *Service) GetEducation(ctx context.Context, userID primitive.ObjectID) ([]*Education, error) {
	records, err := s.store.ListEducation(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return records, nil
}

func (s *Service) UpdateEducation(ctx context.Context, userID, recordID primitive.ObjectID, req EducationRequest) (*Education, error) {
	record, err := s.store.FindEducation(ctx, recordID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if record == nil {
		return nil, apperr.NotFound("Education record")
	}
	if record.UserID != userID {
		return nil, apperr.Unauthorized()
	}

	record.Institution = req.Institution
	record.Degree = req.Degree
	record.FieldOfStudy = req.FieldOfStudy
	record.StartYear = req.StartYear
	record.EndYear = req.EndYear
	record.Grade = req.Grade
	if err := s.store.UpdateEducation(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}
	return record, nil
}

func (s *Service) DeleteEducation(ctx context.Context, userID, recordID primitive.ObjectID) error {
	record, err := s.store.FindEducation(ctx, recordID)
	if err != nil {
		return apperr.Internal(err)
	}
	if record == nil {
		return apperr.NotFound("Education record")
	}
	if record.UserID != userID {
		return apperr.Unauthorized()
	}
	if err := s.store.DeleteEducation(ctx, recordID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) AddAchievement(ctx context.Context, userID primitive.ObjectID, req AchievementRequest) (*Achievement, error) {
	existing, err := s.store.ListAchievements(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	record := &Achievement{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		AwardedAt:   req.AwardedAt,
	}
	if err := s.store.CreateAchievement(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}

	if len(existing) == 0 {
		if err := s.store.IncrementProgress(ctx, userID, PointsAchievement); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return record, nil
}

func (s *Service) GetAchievements(ctx context.Context, userID primitive.ObjectID) ([]*Achievement, error) {
	records, err := s.store.ListAchievements(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return records, nil
}

func (s *Service) UpdateAchievement(ctx context.Context, userID, recordID primitive.ObjectID, req AchievementRequest) (*Achievement, error) {
	record, err := s.store.FindAchievement(ctx, recordID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if record == nil {
		return nil, apperr.NotFound("Achievement")
	}
	if record.UserID != userID {
		return nil, apperr.Unauthorized()
	}

	record.Title = req.Title
	record.Description = req.Description
	record.AwardedAt = req.AwardedAt
	if err := s.store.UpdateAchievement(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}
	return record, nil
}

func (s *Service) DeleteAchievement(ctx context.Context, userID, recordID primitive.ObjectID) error {
	record, err := s.store.FindAchievement(ctx, recordID)
	if err != nil {
		return apperr.Internal(err)
	}
	if record == nil {
		return apperr.NotFound("Achievement")
	}
	if record.UserID != userID {
		return apperr.Unauthorized()
	}
	if err := s.store.DeleteAchievement(ctx, recordID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) AddCertification(ctx context.Context, userID primitive.ObjectID, req CertificationRequest) (*Certification, error) {
	existing, err := s.store.ListCertifications(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	record := &Certification{
		UserID:         userID,
		Name:           req.Name,
		IssuedBy:       req.IssuedBy,
		IssuedAt:       req.IssuedAt,
		CertificateURL: req.CertificateURL,
	}
	if err := s.store.CreateCertification(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}

	if len(existing) == 0 {
		if err := s.store.IncrementProgress(ctx, userID, PointsCertification); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return record, nil
}

func (s *Service) GetCertifications(ctx context.Context, userID primitive.ObjectID) ([]*Certification, error) {
	records, err := s.store.ListCertifications(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return records, nil
}

func (s *Service) UpdateCertification(ctx context.Context, userID, recordID primitive.ObjectID, req CertificationRequest) (*Certification, error) {
	record, err := s.store.FindCertification(ctx, recordID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if record == nil {
		return nil, apperr.NotFound("Certification")
	}
	if record.UserID != userID {
		return nil, apperr.Unauthorized()
	}

	record.Name = req.Name
	record.IssuedBy = req.IssuedBy
	record.IssuedAt = req.IssuedAt
	record.CertificateURL = req.CertificateURL
	if err := s.store.UpdateCertification(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}
	return record, nil
}

func (s *Service) DeleteCertification(ctx context.Context, userID, recordID primitive.ObjectID) error {
	record, err := s.store.FindCertification(ctx, recordID)
	if err != nil {
		return apperr.Internal(err)
	}
	if record == nil {
		return apperr.NotFound("Certification")
	}
	if record.UserID != userID {
		return apperr.Unauthorized()
	}
	if err := s.store.DeleteCertification(ctx, recordID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

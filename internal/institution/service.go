package institution

import (
	"context"
	"fmt"
	"io"
	"path"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
	"CareerGo/internal/auth"
	"CareerGo/internal/config"
	"CareerGo/internal/mailer"
	"CareerGo/internal/storage"
)

type Service struct {
	repo   Store
	users  auth.UserStore
	email  config.EmailSender
	files  storage.Storage
	cfg    *config.AppConfig
	logger *zap.SugaredLogger
}

func NewService(repo *Repository, users *auth.UserRepository, email *config.EmailService, files storage.Storage, cfg *config.AppConfig, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, users: users, email: email, files: files, cfg: cfg, logger: logger}
}

// NewServiceWith wires the service against explicit collaborators. Used by tests.
func NewServiceWith(repo Store, users auth.UserStore, email config.EmailSender, files storage.Storage, cfg *config.AppConfig, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, users: users, email: email, files: files, cfg: cfg, logger: logger}
}

// RegistrationResult pairs the created admin account with its institution.
type RegistrationResult struct {
	AdminDetails       *auth.User   `json:"adminDetails"`
	InstitutionDetails *Institution `json:"institutionDetails"`
}

func (s *Service) Register(ctx context.Context, req RegisterInstitutionRequest) (*RegistrationResult, error) {
	admin, err := s.users.FindByEmail(ctx, req.EmailAddress)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	existing, err := s.repo.FindByEmail(ctx, req.EmailAddress)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if admin != nil || existing != nil {
		return nil, apperr.Conflict("Email address is already in use")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &auth.User{
		Name:         req.AdminName,
		EmailAddress: req.EmailAddress,
		PasswordHash: hash,
		Role:         auth.RoleInstitutionAdmin,
		Institution:  auth.InstitutionLink{IsAssociated: true},
		AccountConfirmation: auth.AccountConfirmation{
			Status: false,
			Token:  auth.GenerateRandomID(),
			Code:   auth.GenerateOTP(6),
		},
		Consent: req.Consent,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	confirmationURL := fmt.Sprintf("%s/confirmation/%s?code=%s", s.cfg.ClientURL, user.AccountConfirmation.Token, user.AccountConfirmation.Code)
	if err := s.email.SendEmail([]string{req.EmailAddress}, "Confirm Your Account", mailer.EmailVerificationTemplate(confirmationURL)); err != nil {
		return nil, apperr.Internal(err)
	}

	inst := &Institution{
		InstitutionName:    req.InstitutionName,
		EmailAddress:       req.EmailAddress,
		Logo:               req.Logo,
		Website:            req.Website,
		RegistrationNumber: req.RegistrationNumber,
		AdminID:            user.ID,
		Consent:            req.Consent,
	}
	if err := s.repo.Create(ctx, inst); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.email.SendEmail([]string{req.EmailAddress}, "Institution Registered successfully",
		mailer.InstitutionRegistrationTemplate(req.AdminName, req.InstitutionName, req.RegistrationNumber)); err != nil {
		return nil, apperr.Internal(err)
	}

	user.Institution.InstitutionID = &inst.ID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	return &RegistrationResult{AdminDetails: user, InstitutionDetails: inst}, nil
}

// InstitutionPage is one page of the admin institution listing.
type InstitutionPage struct {
	Institutions []*Institution `json:"institutions"`
	TotalCount   int64          `json:"totalCount"`
	Page         int64          `json:"page"`
	Limit        int64          `json:"limit"`
}

func (s *Service) GetAll(ctx context.Context, callerID primitive.ObjectID, page, limit int64, search string) (*InstitutionPage, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if caller == nil {
		return nil, apperr.Unauthorized()
	}
	if caller.Role != auth.RoleMasterAdmin && caller.Role != auth.RoleAdmin {
		return nil, apperr.Unauthorized()
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	institutions, total, err := s.repo.Search(ctx, search, (page-1)*limit, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &InstitutionPage{Institutions: institutions, TotalCount: total, Page: page, Limit: limit}, nil
}

// InstitutionDetails pairs the institution with its admin account.
type InstitutionDetails struct {
	Institution      *Institution `json:"institution"`
	InstitutionAdmin *auth.User   `json:"institutionAdmin"`
}

func (s *Service) GetDetails(ctx context.Context, callerID, institutionID primitive.ObjectID) (*InstitutionDetails, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if caller == nil || !caller.Institution.IsAssociated {
		return nil, apperr.Unauthorized()
	}
	if caller.Institution.InstitutionID == nil || *caller.Institution.InstitutionID != institutionID {
		return nil, apperr.Unauthorized()
	}
	if caller.Role == auth.RoleUser {
		return nil, apperr.Unauthorized()
	}

	inst, err := s.repo.FindByID(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}

	admin, err := s.users.FindByID(ctx, inst.AdminID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if admin == nil {
		return nil, apperr.NotFound("Institution admin")
	}

	return &InstitutionDetails{Institution: inst, InstitutionAdmin: admin}, nil
}

func (s *Service) UpdateDetails(ctx context.Context, institutionID primitive.ObjectID, req UpdateDetailsRequest) (*Institution, error) {
	inst, err := s.repo.FindByID(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}

	if req.Website != nil {
		inst.Website = *req.Website
	}
	if req.Admission != nil {
		inst.Admission = *req.Admission
	}
	if req.Hostel != nil {
		inst.Hostel = *req.Hostel
	}
	if err := s.repo.Update(ctx, inst); err != nil {
		return nil, apperr.Internal(err)
	}
	return inst, nil
}

func (s *Service) UpdateLogo(ctx context.Context, institutionID primitive.ObjectID, filename, contentType string, file io.Reader) (*Institution, error) {
	inst, err := s.repo.FindByID(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}

	key := path.Join("institutions", institutionID.Hex(), "logo"+path.Ext(filename))
	url, err := s.files.Save(ctx, key, file, contentType)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	inst.Logo = url
	if err := s.repo.Update(ctx, inst); err != nil {
		return nil, apperr.Internal(err)
	}
	return inst, nil
}

func (s *Service) GetList(ctx context.Context) ([]*InstitutionListItem, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}

func (s *Service) AddCourseCategory(ctx context.Context, institutionID primitive.ObjectID, category string) (*CourseCategory, error) {
	inst, err := s.repo.FindByID(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}

	cats, err := s.repo.FindCategories(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cats == nil {
		cats = &CourseCategory{InstitutionID: institutionID}
	}
	for _, existing := range cats.CourseCategory {
		if existing == category {
			return nil, apperr.Conflict("Course category already exists")
		}
	}
	cats.CourseCategory = append(cats.CourseCategory, category)
	if err := s.repo.SaveCategories(ctx, cats); err != nil {
		return nil, apperr.Internal(err)
	}
	return cats, nil
}

func (s *Service) GetCourseCategories(ctx context.Context, institutionID primitive.ObjectID) (*CourseCategory, error) {
	cats, err := s.repo.FindCategories(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cats == nil {
		return &CourseCategory{InstitutionID: institutionID, CourseCategory: []string{}}, nil
	}
	return cats, nil
}

func (s *Service) RemoveCourseCategory(ctx context.Context, institutionID primitive.ObjectID, category string) (*CourseCategory, error) {
	cats, err := s.repo.FindCategories(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cats == nil {
		return nil, apperr.NotFound("Course category")
	}

	kept := cats.CourseCategory[:0]
	found := false
	for _, existing := range cats.CourseCategory {
		if existing == category {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return nil, apperr.NotFound("Course category")
	}
	cats.CourseCategory = kept
	if err := s.repo.SaveCategories(ctx, cats); err != nil {
		return nil, apperr.Internal(err)
	}
	return cats, nil
}

func (s *Service) CreateCourse(ctx context.Context, institutionID primitive.ObjectID, req CourseRequest) (*Course, error) {
	inst, err := s.repo.FindByID(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if inst == nil {
		return nil, apperr.NotFound("Institution")
	}

	// A course can only be filed under a category the institution declared.
	cats, err := s.repo.FindCategories(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	known := false
	if cats != nil {
		for _, existing := range cats.CourseCategory {
			if existing == req.Category {
				known = true
				break
			}
		}
	}
	if !known {
		return nil, apperr.InvalidRequest("Course category does not exist for this institution")
	}

	course := &Course{
		InstitutionID:    institutionID,
		CourseName:       req.CourseName,
		Category:         req.Category,
		Duration:         req.Duration,
		Eligibility:      req.Eligibility,
		Mode:             req.Mode,
		Fees:             req.Fees,
		Syllabus:         req.Syllabus,
		AdmissionProcess: req.AdmissionProcess,
		Email:            req.Email,
		Phone:            req.Phone,
		Website:          req.Website,
		Brochure:         req.Brochure,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, apperr.Internal(err)
	}
	return course, nil
}

func (s *Service) GetCourses(ctx context.Context, institutionID primitive.ObjectID) ([]*Course, error) {
	courses, err := s.repo.FindCoursesByInstitution(ctx, institutionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return courses, nil
}

func (s *Service) GetCourseDetail(ctx context.Context, courseID primitive.ObjectID) (*Course, error) {
	course, err := s.repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if course == nil {
		return nil, apperr.NotFound("Course")
	}
	return course, nil
}

func (s *Service) UpdateCourse(ctx context.Context, courseID primitive.ObjectID, req CourseRequest) (*Course, error) {
	course, err := s.repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if course == nil {
		return nil, apperr.NotFound("Course")
	}

	course.CourseName = req.CourseName
	course.Category = req.Category
	course.Duration = req.Duration
	course.Eligibility = req.Eligibility
	course.Mode = req.Mode
	course.Fees = req.Fees
	course.Syllabus = req.Syllabus
	course.AdmissionProcess = req.AdmissionProcess
	course.Email = req.Email
	course.Phone = req.Phone
	course.Website = req.Website
	if req.Brochure != "" {
		course.Brochure = req.Brochure
	}
	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		return nil, apperr.Internal(err)
	}
	return course, nil
}

func (s *Service) DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error {
	course, err := s.repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return apperr.Internal(err)
	}
	if course == nil {
		return apperr.NotFound("Course")
	}

	if err := s.repo.DeleteCourse(ctx, courseID); err != nil {
		return apperr.Internal(err)
	}
	if course.Brochure != "" {
		key := path.Join("courses", courseID.Hex(), "brochure"+path.Ext(course.Brochure))
		if err := s.files.Delete(ctx, key); err != nil {
			s.logger.Warnw("failed to delete course brochure", "course", courseID.Hex(), "error", err)
		}
	}
	return nil
}

package auth

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CareerGo/internal/apperr"
	"CareerGo/internal/config"
	"CareerGo/internal/mailer"
)

// ProfileInitializer creates the empty basic-info record a fresh user starts
// with. Implemented by the profile service.
type ProfileInitializer interface {
	EnsureBasicInfo(ctx context.Context, userID primitive.ObjectID) error
}

type Service struct {
	users    UserStore
	tokens   RefreshTokenStore
	email    config.EmailSender
	cfg      *config.AppConfig
	profiles ProfileInitializer
	logger   *zap.SugaredLogger
}

func NewService(users *UserRepository, tokens *RefreshTokenRepository, email *config.EmailService, cfg *config.AppConfig, profiles ProfileInitializer, logger *zap.SugaredLogger) *Service {
	return &Service{users: users, tokens: tokens, email: email, cfg: cfg, profiles: profiles, logger: logger}
}

// NewServiceWith wires the service against explicit collaborators. Used by tests.
func NewServiceWith(users UserStore, tokens RefreshTokenStore, email config.EmailSender, cfg *config.AppConfig, profiles ProfileInitializer, logger *zap.SugaredLogger) *Service {
	return &Service{users: users, tokens: tokens, email: email, cfg: cfg, profiles: profiles, logger: logger}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	existing, err := s.users.FindByEmail(ctx, req.EmailAddress)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		if existing.AccountConfirmation.Status {
			return nil, apperr.Conflict("User with this email address already exists")
		}
		// An unconfirmed duplicate registration replaces the stale record.
		if err := s.users.Delete(ctx, existing.ID); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}

	user := &User{
		Name:         req.Name,
		EmailAddress: req.EmailAddress,
		PasswordHash: hash,
		Role:         role,
		Institution:  InstitutionLink{IsAssociated: false},
		AccountConfirmation: AccountConfirmation{
			Status: false,
			Token:  GenerateRandomID(),
			Code:   GenerateOTP(6),
		},
		Consent: req.Consent,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.profiles.EnsureBasicInfo(ctx, user.ID); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.sendConfirmationEmail(user); err != nil {
		return nil, apperr.Internal(err)
	}

	return user, nil
}

func (s *Service) sendConfirmationEmail(user *User) error {
	confirmationURL := fmt.Sprintf("%s/confirmation/%s?code=%s", s.cfg.ClientURL, user.AccountConfirmation.Token, user.AccountConfirmation.Code)
	return s.email.SendEmail([]string{user.EmailAddress}, "Confirm Your Account", mailer.EmailVerificationTemplate(confirmationURL))
}

func (s *Service) VerifyAccount(ctx context.Context, token, code string) error {
	user, err := s.users.FindByConfirmation(ctx, token, code)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.InvalidRequest("Invalid confirmation token or code")
	}
	if user.AccountConfirmation.Status {
		return apperr.InvalidRequest("Account already confirmed")
	}

	now := time.Now().UTC()
	user.AccountConfirmation.Status = true
	user.AccountConfirmation.Timestamp = &now
	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	if err := s.email.SendEmail([]string{user.EmailAddress}, "Welcome to CareerGo: Account verified", mailer.VerificationSuccessTemplate()); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) ResendVerification(ctx context.Context, emailAddress string) error {
	user, err := s.users.FindByEmail(ctx, emailAddress)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("User")
	}
	if user.AccountConfirmation.Status {
		return apperr.InvalidRequest("Account already confirmed")
	}

	user.AccountConfirmation.Token = GenerateRandomID()
	user.AccountConfirmation.Code = GenerateOTP(6)
	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}
	if err := s.sendConfirmationEmail(user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// LoginResult carries the freshly issued token pair back to the handler, which
// turns them into cookies.
type LoginResult struct {
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, req.EmailAddress)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		// Same answer as a wrong password so login does not reveal which
		// addresses are registered.
		return nil, apperr.InvalidRequest("Invalid credentials")
	}
	if !user.AccountConfirmation.Status {
		return nil, apperr.InvalidRequest("Please confirm your account before login")
	}
	if !CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.InvalidRequest("Invalid credentials")
	}

	institutionID := ""
	if user.Institution.InstitutionID != nil {
		institutionID = user.Institution.InstitutionID.Hex()
	}

	accessToken, err := GenerateJWT(user.ID, user.Name, user.Role, institutionID, s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refreshToken, err := GenerateJWT(user.ID, "", "", "", s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.tokens.Create(ctx, &RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.RefreshTokenExpiry),
	}); err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{
		User:         UserSummary{ID: user.ID.Hex(), Name: user.Name, EmailAddress: user.EmailAddress},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperr.New(401, "Refresh token not found")
	}

	stored, err := s.tokens.Find(ctx, refreshToken)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if stored == nil {
		return "", apperr.New(401, "Token is invalid")
	}

	claims, err := ValidateJWT(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", apperr.New(401, "Token is invalid")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return "", apperr.New(401, "Token is invalid")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if user == nil {
		return "", apperr.Unauthorized()
	}

	institutionID := ""
	if user.Institution.InstitutionID != nil {
		institutionID = user.Institution.InstitutionID.Hex()
	}
	accessToken, err := GenerateJWT(user.ID, user.Name, user.Role, institutionID, s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return accessToken, nil
}

func (s *Service) ForgotPassword(ctx context.Context, emailAddress string) error {
	user, err := s.users.FindByEmail(ctx, emailAddress)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("User")
	}
	if !user.AccountConfirmation.Status {
		return apperr.InvalidRequest("Account confirmation is required to perform this action")
	}

	user.PasswordReset.Token = GenerateRandomID()
	user.PasswordReset.Expiry = ResetPasswordExpiry(15)
	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	resetLink := fmt.Sprintf("%s/resetPassword/%s", s.cfg.ClientURL, user.PasswordReset.Token)
	if err := s.email.SendEmail([]string{user.EmailAddress}, "Password reset request", mailer.ForgotPasswordTemplate(resetLink)); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("User")
	}
	if !user.AccountConfirmation.Status {
		return apperr.InvalidRequest("Account confirmation is required to perform this action")
	}
	if user.PasswordReset.Expiry == 0 {
		return apperr.InvalidRequest("Your request is invalid")
	}
	if time.Now().UnixMilli() > user.PasswordReset.Expiry {
		return apperr.InvalidRequest("Link expired")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	now := time.Now().UTC()
	user.PasswordHash = hash
	user.PasswordReset.Token = ""
	user.PasswordReset.Expiry = 0
	user.PasswordReset.LastResetAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	if err := s.email.SendEmail([]string{user.EmailAddress}, "Password reset successful", mailer.PasswordResetSuccessTemplate()); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID primitive.ObjectID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.Unauthorized()
	}

	if !CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperr.InvalidRequest("Invalid old password")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperr.InvalidRequest("New password and confirm password must match")
	}
	if req.NewPassword == req.OldPassword {
		return apperr.InvalidRequest("New password must differ from the old password")
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	if err := s.email.SendEmail([]string{user.EmailAddress}, "Password changed successfully", mailer.PasswordResetSuccessTemplate()); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// SelfIdentify echoes back the identity of the calling user.
func (s *Service) SelfIdentify(ctx context.Context, userID primitive.ObjectID) (*UserSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.InvalidRequest("Token is invalid")
	}
	return &UserSummary{ID: user.ID.Hex(), Name: user.Name, EmailAddress: user.EmailAddress}, nil
}

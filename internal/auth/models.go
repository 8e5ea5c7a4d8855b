package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleMasterAdmin      = "Master Admin"
	RoleManager          = "Manager"
	RoleAdmin            = "Admin"
	RoleUser             = "User"
	RoleInstitutionAdmin = "Institution Admin"
)

// AccountConfirmation tracks the email confirmation handshake.
type AccountConfirmation struct {
	Status    bool       `bson:"status" json:"status"`
	Token     string     `bson:"token" json:"-"`
	Code      string     `bson:"code" json:"-"`
	Timestamp *time.Time `bson:"timestamp" json:"timestamp"`
}

// PasswordReset tracks an in-flight forgot-password flow. Expiry is epoch millis.
type PasswordReset struct {
	Token       string     `bson:"token" json:"-"`
	Expiry      int64      `bson:"expiry" json:"-"`
	LastResetAt *time.Time `bson:"last_reset_at" json:"lastResetAt"`
}

// InstitutionLink associates an institution-admin user with their institution.
type InstitutionLink struct {
	IsAssociated  bool                `bson:"is_associated" json:"isAssociated"`
	InstitutionID *primitive.ObjectID `bson:"institution_id,omitempty" json:"institutionId,omitempty"`
}

type User struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name                string              `bson:"name" json:"name"`
	EmailAddress        string              `bson:"email_address" json:"emailAddress"`
	ProfileImage        string              `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	PasswordHash        string              `bson:"password_hash" json:"-"`
	Role                string              `bson:"role" json:"role"`
	Institution         InstitutionLink     `bson:"institution" json:"institution"`
	AccountConfirmation AccountConfirmation `bson:"account_confirmation" json:"accountConfirmation"`
	PasswordReset       PasswordReset       `bson:"password_reset" json:"-"`
	UserProfileProgress int                 `bson:"user_profile_progress" json:"userProfileProgress"`
	LastLoginAt         *time.Time          `bson:"last_login_at" json:"lastLoginAt"`
	Consent             bool                `bson:"consent" json:"consent"`
	CreatedAt           time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updatedAt"`
}

// RefreshToken is the persisted half of a login session. ExpiresAt lets the
// sweeper prune abandoned sessions.
type RefreshToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=72"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"omitempty,oneof='Master Admin' Manager Admin User 'Institution Admin'"`
	Consent      bool   `json:"consent" validate:"required"`
}

type LoginRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type ResendVerificationRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
}

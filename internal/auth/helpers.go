package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type JWTClaims struct {
	UserID        string `json:"userId"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	InstitutionID string `json:"institutionId,omitempty"`
	jwt.RegisteredClaims
}

func GenerateJWT(userID primitive.ObjectID, name, role, institutionID, secret string, duration time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID:        userID.Hex(),
		Name:          name,
		Role:          role,
		InstitutionID: institutionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateJWT(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GenerateRandomID() string {
	return uuid.NewString()
}

// GenerateOTP returns a numeric confirmation code of the given length.
func GenerateOTP(length int) string {
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	span := new(big.Int).Sub(max, min)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		return min.String()
	}
	return new(big.Int).Add(n, min).String()
}

// ResetPasswordExpiry returns an epoch-millis deadline the given minutes ahead.
func ResetPasswordExpiry(minutes int) int64 {
	return time.Now().Add(time.Duration(minutes)*time.Minute).UnixMilli()
}

// FormatDate renders a date the way the emails show it, e.g. "1 May 2025".
func FormatDate(date time.Time) string {
	return date.Format("2 January 2006")
}

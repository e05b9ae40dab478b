package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account in the users collection.
// The OTP pair is either both set (a verification is pending) or both
// absent (no pending verification).
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	OTP          *string       `bson:"otp,omitempty"`
	OTPExpiresAt *time.Time    `bson:"otpExpiresAt,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

// SignupRequest represents a registration request.
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResendOTPRequest represents a request for a fresh verification code.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents an OTP verification attempt.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ClaimPayload is the identity data embedded in a session token and
// mirrored into the userData cookie.
type ClaimPayload struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

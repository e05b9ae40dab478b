package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shoplite/shoplite-api/internal/model"
	"github.com/shoplite/shoplite-api/internal/repository"
	"github.com/shoplite/shoplite-api/internal/service"
	"github.com/shoplite/shoplite-api/internal/session"
)

// AuthHandler handles HTTP requests for the auth flow.
type AuthHandler struct {
	service *service.AuthService
	cookies session.Gateway
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, cookies session.Gateway) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies}
}

// HandleSignup handles POST /api/auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Signup(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrSignupFieldsRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			slog.Error("signup failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Registration failed. Please try again."))
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Registration successful. Please verify your email.",
		"email":   req.Email,
	})
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Login(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrLoginFieldsRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			slog.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to send login OTP. Please try again."))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login OTP sent successfully",
		"email":   req.Email,
	})
}

// HandleResendOTP handles POST /api/auth/resend-otp requests.
func (h *AuthHandler) HandleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req model.ResendOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ResendOTP(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("User not found"))
		default:
			slog.Error("resend otp failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to send OTP. Please try again."))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP sent successfully",
	})
}

// HandleVerifyOTP handles POST /api/auth/verify-otp requests. On
// success it stores the session cookie pair and returns the claim
// payload together with the token.
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payload, token, err := h.service.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVerifyFieldsRequired),
			errors.Is(err, service.ErrInvalidOTP),
			errors.Is(err, service.ErrOTPExpired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("User not found"))
		default:
			slog.Error("verify otp failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to verify OTP. Please try again."))
		}
		return
	}

	if err := h.cookies.Set(w, token, payload); err != nil {
		slog.Error("setting session cookies failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to verify OTP. Please try again."))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP verified successfully",
		"user":    payload,
		"token":   token,
	})
}

// HandleLogout handles POST /api/auth/logout requests by expiring the
// session cookie pair.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

// decodeBody decodes a JSON request body, writing the error response
// itself when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

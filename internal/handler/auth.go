package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/enemamar/enemamar-api/internal/payload"
	"github.com/enemamar/enemamar-api/internal/usecase"
	"github.com/enemamar/enemamar-api/shared/auth"
	"github.com/enemamar/enemamar-api/shared/phone"
	"github.com/enemamar/enemamar-api/shared/sms"
	"github.com/enemamar/enemamar-api/shared/validator"
)

// AuthHandler serves the phone verification and password reset endpoints.
type AuthHandler struct {
	passwordResetUsecase usecase.PasswordResetUsecase
	verificationUsecase  usecase.VerificationUsecase
	validator            *validator.Validator
	logger               *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	passwordResetUsecase usecase.PasswordResetUsecase,
	verificationUsecase usecase.VerificationUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		passwordResetUsecase: passwordResetUsecase,
		verificationUsecase:  verificationUsecase,
		validator:            validator,
		logger:               logger,
	}
}

// Routes mounts the auth endpoints.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/otp/send", h.SendOTP)
	r.Post("/otp/verify", h.VerifyOTP)
	r.Post("/password/forget", h.ForgetPassword)
	r.Post("/password/verify-otp", h.VerifyResetOTP)
	r.Post("/password/reset", h.ResetPassword)

	return r
}

// SendOTP sends a verification OTP to the given phone number.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.SendOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.verificationUsecase.SendOTP(r.Context(), req.PhoneNumber); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{
		Detail: "OTP sent successfully",
	})
}

// VerifyOTP checks the submitted code and activates the account on success.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.verificationUsecase.VerifyPhone(r.Context(), req.PhoneNumber, req.Code); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{
		Detail: "OTP verified successfully",
	})
}

// ForgetPassword starts the password reset flow by sending an OTP to the
// account's phone number. Responding with 404 for unknown numbers reveals
// whether an account exists; kept to match the mobile clients.
func (h *AuthHandler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.RequestReset(r.Context(), req.PhoneNumber); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{
		Detail: "OTP sent to your phone number for password reset",
	})
}

// VerifyResetOTP checks the submitted code and returns a short-lived reset
// token on success.
func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyResetOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.passwordResetUsecase.VerifyOTP(r.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.VerifyResetOTPResponse{
		Detail:     "OTP verified successfully for password reset",
		ResetToken: token,
	})
}

// ResetPassword overwrites the password of the user the reset token was
// minted for.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{
		Detail: "Password reset successfully",
	})
}

func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}

	if messages := h.validator.Struct(dst); messages != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "validation failed", messages)
		return false
	}

	return true
}

func (h *AuthHandler) respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, usecase.ErrOTPInvalid):
		h.respondError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenPurposeMismatch):
		h.respondError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, usecase.ErrPasswordTooShort),
		errors.Is(err, phone.ErrInvalidPhoneNumber):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, sms.ErrSendFailed):
		h.respondError(w, http.StatusBadGateway, err.Error(), nil)
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		h.respondError(w, http.StatusInternalServerError, "something went wrong", nil)
	}
}

func (h *AuthHandler) respondError(w http.ResponseWriter, status int, detail string, errs []string) {
	h.respondJSON(w, status, payload.ErrorResponse{
		Detail: detail,
		Errors: errs,
	})
}

func (h *AuthHandler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

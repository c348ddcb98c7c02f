package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/enemamar/enemamar-api/internal/repository"
	"github.com/enemamar/enemamar-api/shared/auth"
	"github.com/enemamar/enemamar-api/shared/phone"
	"github.com/enemamar/enemamar-api/shared/security"
	"github.com/enemamar/enemamar-api/shared/sms"
)

// OTPProvider delivers one-time codes over SMS and verifies submissions
// against what it sent. The code itself never passes through this service.
type OTPProvider interface {
	Challenge(ctx context.Context, phoneNumber string) error
	Verify(ctx context.Context, phoneNumber, code string) error
}

// PasswordResetUsecase defines the business logic for the phone-based
// password reset flow: request reset, verify OTP, reset password.
type PasswordResetUsecase interface {
	// RequestReset triggers delivery of a reset OTP to the given phone number.
	RequestReset(ctx context.Context, phoneNumber string) error

	// VerifyOTP checks the submitted code and, on success, returns a reset
	// token asserting the verification. This is the only place a reset token
	// is minted.
	VerifyOTP(ctx context.Context, phoneNumber, code string) (string, error)

	// ResetPassword validates the reset token and overwrites the password of
	// the user it was minted for.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

const minPasswordLength = 8

var (
	ErrUserNotFound     = errors.New("user with this phone number does not exist")
	ErrOTPInvalid       = errors.New("invalid or expired OTP code")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	otp      OTPProvider
	codec    auth.PasswordResetCodec
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	otp OTPProvider,
	codec auth.PasswordResetCodec,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		otp:      otp,
		codec:    codec,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, phoneNumber string) error {
	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return err
	}

	// NOTE: failing here reveals whether an account exists for the number.
	// Kept for parity with the mobile clients; returning a generic
	// acknowledgement instead would close the enumeration gap.
	if _, err := u.userRepo.GetUserByPhone(ctx, normalized); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return u.otp.Challenge(ctx, normalized)
}

func (u *passwordResetUsecase) VerifyOTP(ctx context.Context, phoneNumber, code string) (string, error) {
	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return "", err
	}

	if _, err := u.userRepo.GetUserByPhone(ctx, normalized); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := u.otp.Verify(ctx, normalized, code); err != nil {
		if errors.Is(err, sms.ErrCodeInvalid) {
			return "", ErrOTPInvalid
		}
		return "", err
	}

	return u.codec.Mint(normalized)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	phoneNumber, err := u.codec.Validate(token)
	if err != nil {
		return err
	}

	// Should not normally fail after token validation; guards against the
	// account being removed within the token window.
	user, err := u.userRepo.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// The token is not marked as consumed anywhere: it stays redeemable
	// until expiry. Single-use semantics would need a consumed-token set
	// keyed by jti, which this flow deliberately does without.
	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return nil
}

package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/enemamar/enemamar-api/internal/repository"
	"github.com/enemamar/enemamar-api/shared/phone"
	"github.com/enemamar/enemamar-api/shared/sms"
)

// VerificationUsecase defines the business logic for phone number
// verification and account activation.
type VerificationUsecase interface {
	// SendOTP triggers delivery of a verification OTP to the given phone number.
	SendOTP(ctx context.Context, phoneNumber string) error

	// VerifyPhone checks the submitted code and activates the account on success.
	VerifyPhone(ctx context.Context, phoneNumber, code string) error
}

type verificationUsecase struct {
	userRepo repository.UserRepository
	otp      OTPProvider
}

// NewVerificationUsecase creates a new instance of VerificationUsecase.
func NewVerificationUsecase(userRepo repository.UserRepository, otp OTPProvider) VerificationUsecase {
	return &verificationUsecase{
		userRepo: userRepo,
		otp:      otp,
	}
}

func (u *verificationUsecase) SendOTP(ctx context.Context, phoneNumber string) error {
	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.GetUserByPhone(ctx, normalized); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return u.otp.Challenge(ctx, normalized)
}

func (u *verificationUsecase) VerifyPhone(ctx context.Context, phoneNumber, code string) error {
	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return err
	}

	if err := u.otp.Verify(ctx, normalized, code); err != nil {
		if errors.Is(err, sms.ErrCodeInvalid) {
			return ErrOTPInvalid
		}
		return err
	}

	if _, err := u.userRepo.ActivateUser(ctx, normalized); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

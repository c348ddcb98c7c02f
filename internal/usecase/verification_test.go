package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/enemamar/enemamar-api/internal/model"
)

func seedInactiveUser() *model.User {
	return &model.User{
		FirstName:    "Abebe",
		LastName:     "Kebede",
		PhoneNumber:  "+251912345678",
		PasswordHash: "hash",
		Role:         "student",
		Active:       false,
	}
}

func TestSendOTP(t *testing.T) {
	repo := newFakeUserRepo(seedInactiveUser())
	otp := &fakeOTPProvider{code: "123456"}
	u := NewVerificationUsecase(repo, otp)

	if err := u.SendOTP(context.Background(), "0912345678"); err != nil {
		t.Fatal(err)
	}
	if len(otp.challenges) != 1 || otp.challenges[0] != "+251912345678" {
		t.Fatalf("expected one challenge to the canonical number, got %v", otp.challenges)
	}
}

func TestSendOTPUnknownNumber(t *testing.T) {
	u := NewVerificationUsecase(newFakeUserRepo(), &fakeOTPProvider{code: "123456"})

	if err := u.SendOTP(context.Background(), "0912345678"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestVerifyPhoneActivatesAccount(t *testing.T) {
	user := seedInactiveUser()
	repo := newFakeUserRepo(user)
	u := NewVerificationUsecase(repo, &fakeOTPProvider{code: "123456"})

	if err := u.VerifyPhone(context.Background(), "0912345678", "123456"); err != nil {
		t.Fatal(err)
	}
	if !user.Active {
		t.Fatal("account was not activated")
	}
}

func TestVerifyPhoneWrongCode(t *testing.T) {
	user := seedInactiveUser()
	u := NewVerificationUsecase(newFakeUserRepo(user), &fakeOTPProvider{code: "123456"})

	if err := u.VerifyPhone(context.Background(), "0912345678", "000000"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}
	if user.Active {
		t.Fatal("account must stay inactive on a wrong code")
	}
}

func TestVerifyPhoneUnknownNumber(t *testing.T) {
	u := NewVerificationUsecase(newFakeUserRepo(), &fakeOTPProvider{code: "123456"})

	if err := u.VerifyPhone(context.Background(), "0912345678", "123456"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PasswordResetPurpose tags tokens minted for the password reset flow. A
// token carrying any other purpose must never be accepted by ResetPassword.
const PasswordResetPurpose = "password-reset"

var (
	ErrTokenInvalid         = errors.New("invalid password reset token")
	ErrTokenExpired         = errors.New("password reset token has expired")
	ErrTokenPurposeMismatch = errors.New("token was not issued for password reset")
)

// PasswordResetClaims are the claims embedded in a password reset token.
type PasswordResetClaims struct {
	PhoneNumber string `json:"phone_number"`
	Purpose     string `json:"purpose"`
	jwt.RegisteredClaims
}

// PasswordResetCodec mints and validates the stateless password reset token.
// The token is the only record that OTP verification happened; nothing is
// persisted server-side, so a minted token stays valid until its natural
// expiry and cannot be revoked earlier.
type PasswordResetCodec struct {
	jwtAuth   JWTAuthenticator
	issuer    string
	secret    string
	expiresIn time.Duration
}

// NewPasswordResetCodec creates a codec signing tokens with the given secret.
// expiresIn bounds the window during which a minted token can be redeemed.
func NewPasswordResetCodec(secret, issuer string, expiresIn time.Duration) PasswordResetCodec {
	return PasswordResetCodec{
		jwtAuth:   NewJWTAuthenticator(issuer, issuer),
		issuer:    issuer,
		secret:    secret,
		expiresIn: expiresIn,
	}
}

// Mint produces a signed token asserting that the given canonical phone
// number completed OTP verification for password reset. Pure computation, no
// side effects.
func (c PasswordResetCodec) Mint(phoneNumber string) (string, error) {
	now := time.Now()
	claims := PasswordResetClaims{
		PhoneNumber: phoneNumber,
		Purpose:     PasswordResetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   phoneNumber,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiresIn)),
		},
	}

	return c.jwtAuth.GenerateToken(claims, c.secret)
}

// Validate verifies the token's signature, expiry and purpose tag, and
// returns the phone number it was minted for.
func (c PasswordResetCodec) Validate(tokenStr string) (string, error) {
	claims := &PasswordResetClaims{}
	if _, err := c.jwtAuth.ValidateTokenWithClaims(tokenStr, c.secret, claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if claims.Purpose != PasswordResetPurpose {
		return "", ErrTokenPurposeMismatch
	}

	return claims.PhoneNumber, nil
}

package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

var (
	ErrSendFailed  = errors.New("failed to deliver OTP SMS")
	ErrCodeInvalid = errors.New("invalid or expired OTP code")
)

const (
	// otpLength is the number of digits in a generated code.
	otpLength = 6

	// otpTTLSeconds is how long AfroMessage keeps a generated code valid.
	otpTTLSeconds = 300
)

// Client sends and verifies one-time passwords through the AfroMessage
// challenge API. The generated code lives entirely on the provider side;
// this client only triggers delivery and forwards submitted codes for
// validation.
type Client struct {
	config     *smsConfig
	httpClient *http.Client
}

// NewClient creates a new Client instance configured from environment
// variables.
func NewClient(logger *zerolog.Logger) *Client {
	cfg := newSMSConfig(logger)

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate SMS configuration")
	}

	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Challenge asks AfroMessage to generate a one-time code and deliver it by
// SMS to the given phone number.
func (c *Client) Challenge(ctx context.Context, phoneNumber string) error {
	params := url.Values{}
	params.Set("from", c.config.IdentifierID)
	params.Set("sender", c.config.Sender)
	params.Set("to", phoneNumber)
	params.Set("pr", "Your Enemamar verification code is: ")
	params.Set("sb", "0")
	params.Set("sa", "0")
	params.Set("ttl", strconv.Itoa(otpTTLSeconds))
	params.Set("len", strconv.Itoa(otpLength))
	params.Set("t", "0")

	acknowledged, err := c.call(ctx, "/api/challenge", params)
	if err != nil {
		return err
	}
	if !acknowledged {
		return ErrSendFailed
	}

	return nil
}

// Verify checks a submitted code against the one AfroMessage last sent to
// the phone number.
func (c *Client) Verify(ctx context.Context, phoneNumber, code string) error {
	params := url.Values{}
	params.Set("to", phoneNumber)
	params.Set("code", code)

	acknowledged, err := c.call(ctx, "/api/verify", params)
	if err != nil {
		return err
	}
	if !acknowledged {
		return ErrCodeInvalid
	}

	return nil
}

type apiResponse struct {
	Acknowledge string `json:"acknowledge"`
}

func (c *Client) call(ctx context.Context, path string, params url.Values) (bool, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.config.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("afromessage returned status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}

	return body.Acknowledge == "success", nil
}

// smsConfig holds AfroMessage API configuration.
type smsConfig struct {
	BaseURL      string `env:"SMS_BASE_URL" envDefault:"https://api.afromessage.com"`
	Token        string `env:"SMS_TOKEN"`
	IdentifierID string `env:"SMS_ID"`
	Sender       string `env:"SMS_SENDER"  envDefault:"Enemamar"`
}

// newSMSConfig creates an smsConfig instance from environment variables.
func newSMSConfig(logger *zerolog.Logger) *smsConfig {
	cfg, err := env.ParseAs[smsConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

// validate checks if the SMS configuration is valid.
func (c *smsConfig) validate() error {
	if c.Token == "" {
		return fmt.Errorf("missing SMS_TOKEN environment variable")
	}
	if c.IdentifierID == "" {
		return fmt.Errorf("missing SMS_ID environment variable")
	}

	return nil
}

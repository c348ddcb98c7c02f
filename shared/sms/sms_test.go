package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("SMS_BASE_URL", server.URL)
	t.Setenv("SMS_TOKEN", "test-token")
	t.Setenv("SMS_ID", "test-identifier")

	logger := zerolog.Nop()
	return NewClient(&logger)
}

func TestChallengeSuccess(t *testing.T) {
	var gotPath, gotAuth, gotTo, gotLen string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTo = r.URL.Query().Get("to")
		gotLen = r.URL.Query().Get("len")
		fmt.Fprint(w, `{"acknowledge":"success"}`)
	})

	if err := client.Challenge(context.Background(), "+251912345678"); err != nil {
		t.Fatal(err)
	}

	if gotPath != "/api/challenge" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotTo != "+251912345678" {
		t.Fatalf("unexpected recipient: %q", gotTo)
	}
	if gotLen != "6" {
		t.Fatalf("unexpected code length: %q", gotLen)
	}
}

func TestChallengeNotAcknowledged(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"acknowledge":"error"}`)
	})

	if err := client.Challenge(context.Background(), "+251912345678"); !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed, got %v", err)
	}
}

func TestChallengeHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := client.Challenge(context.Background(), "+251912345678"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestVerifySuccess(t *testing.T) {
	var gotPath, gotCode string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCode = r.URL.Query().Get("code")
		fmt.Fprint(w, `{"acknowledge":"success"}`)
	})

	if err := client.Verify(context.Background(), "+251912345678", "123456"); err != nil {
		t.Fatal(err)
	}

	if gotPath != "/api/verify" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotCode != "123456" {
		t.Fatalf("unexpected code: %q", gotCode)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"acknowledge":"error"}`)
	})

	if err := client.Verify(context.Background(), "+251912345678", "000000"); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}
}

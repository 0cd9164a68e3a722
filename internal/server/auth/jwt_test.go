package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/vkarpenko/credo/internal/common"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := IssueToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	got, err := SubjectFromToken(tok, secret)
	if err != nil {
		t.Fatalf("SubjectFromToken error: %v", err)
	}
	if got != userID {
		t.Fatalf("userID mismatch: got %q want %q", got, userID)
	}
}

func TestSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := IssueToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = SubjectFromToken(tok, secret)
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = SubjectFromToken(tok, []byte("wrong-secret"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestSubjectFromToken_Tampered(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken("u3", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// flip a character in the payload segment
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = SubjectFromToken(tampered, secret)
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestSubjectFromToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := SubjectFromToken("not.a.jwt", []byte("k"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

// Expired, tampered and malformed verification failures must be
// indistinguishable to the caller.
func TestSubjectFromToken_FailuresIndistinguishable(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	expired, _ := IssueToken("u", secret, -time.Minute)
	foreign, _ := IssueToken("u", []byte("other"), time.Minute)

	var errs []error
	for _, tok := range []string{expired, foreign, "garbage"} {
		_, err := SubjectFromToken(tok, secret)
		errs = append(errs, err)
	}
	for i, err := range errs {
		if err != common.ErrInvalidToken {
			t.Fatalf("case %d: expected the generic invalid-token error, got %v", i, err)
		}
	}
}

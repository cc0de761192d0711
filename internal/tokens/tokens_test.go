package tokens

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-32-bytes-xxxxxxxxxxx"

func TestGenerateAndVerify(t *testing.T) {
	raw, err := Generate(testSecret, "user-1", "a@b.com", "email", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := Verify(testSecret, raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.com" || claims.LoginMethod != "email" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected iat and exp to be set: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("exp-iat = %v, want %v", got, time.Hour)
	}
}

func TestGenerate_MissingSecret(t *testing.T) {
	if _, err := Generate("", "u", "a@b.com", "email", time.Hour); err == nil {
		t.Fatal("expected error when signing secret is empty")
	}
}

func TestVerify_Expired(t *testing.T) {
	raw, err := Generate(testSecret, "user-1", "a@b.com", "email", -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_, err = Verify(testSecret, raw)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_BadSignature(t *testing.T) {
	raw, err := Generate(testSecret, "user-1", "a@b.com", "email", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_, err = Verify("some-other-secret-entirely-xxxxx", raw)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	raw, err := Generate(testSecret, "user-1", "a@b.com", "email", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parts := strings.Split(raw, ".")
	tampered := parts[0] + ".eyJmYWtlIjoxfQ." + parts[2]
	_, err = Verify(testSecret, tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := Verify(testSecret, raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q) = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestDecode(t *testing.T) {
	raw, err := Generate(testSecret, "user-1", "a@b.com", "google", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	claims := Decode(raw)
	if claims == nil {
		t.Fatal("Decode returned nil for a well-formed token")
	}
	if claims.UserID != "user-1" || claims.LoginMethod != "google" {
		t.Fatalf("unexpected decoded claims: %+v", claims)
	}

	// expired tokens still decode: Decode is display-only
	expired, _ := Generate(testSecret, "user-1", "a@b.com", "email", -time.Minute)
	if Decode(expired) == nil {
		t.Fatal("Decode should not validate expiry")
	}
}

func TestDecode_MalformedReturnsNil(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.!!!.c", "a.b.c.d"} {
		if got := Decode(raw); got != nil {
			t.Fatalf("Decode(%q) = %+v, want nil", raw, got)
		}
	}
}

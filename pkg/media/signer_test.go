package media

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestSignedURLRoundTrip(t *testing.T) {
	s := NewSigner("topsecret", "https://media.example.com", time.Hour)
	now := time.Unix(1_700_000_000, 0)

	signed := s.SignedURL("uploads/2024/pic.jpg", now)
	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}
	if u.Path != "/uploads/2024/pic.jpg" {
		t.Errorf("path = %q", u.Path)
	}

	exp := u.Query().Get("exp")
	sig := u.Query().Get("sig")
	if !s.Verify(u.Path, exp, sig, now) {
		t.Error("freshly issued signature failed verification")
	}
}

func TestSignedURLExpiry(t *testing.T) {
	s := NewSigner("topsecret", "https://media.example.com", time.Minute)
	now := time.Unix(1_700_000_000, 0)

	signed := s.SignedURL("pic.jpg", now)
	u, _ := url.Parse(signed)
	exp := u.Query().Get("exp")
	sig := u.Query().Get("sig")

	if s.Verify(u.Path, exp, sig, now.Add(2*time.Minute)) {
		t.Error("expired signature still verifies")
	}
}

func TestSignedURLTamperDetection(t *testing.T) {
	s := NewSigner("topsecret", "https://media.example.com", time.Hour)
	now := time.Unix(1_700_000_000, 0)

	signed := s.SignedURL("pic.jpg", now)
	u, _ := url.Parse(signed)
	exp := u.Query().Get("exp")
	sig := u.Query().Get("sig")

	if s.Verify("/other.jpg", exp, sig, now) {
		t.Error("signature verified for a different path")
	}
	tampered := strings.Replace(sig, sig[:1], "0", 1)
	if tampered != sig && s.Verify(u.Path, exp, tampered, now) {
		t.Error("tampered signature verified")
	}
	if s.Verify(u.Path, "not-a-number", sig, now) {
		t.Error("garbage expiry verified")
	}
}

func TestSignerKeyMatters(t *testing.T) {
	a := NewSigner("key-a", "https://media.example.com", time.Hour)
	b := NewSigner("key-b", "https://media.example.com", time.Hour)
	now := time.Unix(1_700_000_000, 0)

	signed := a.SignedURL("pic.jpg", now)
	u, _ := url.Parse(signed)
	if b.Verify(u.Path, u.Query().Get("exp"), u.Query().Get("sig"), now) {
		t.Error("signature from key-a verified under key-b")
	}
}

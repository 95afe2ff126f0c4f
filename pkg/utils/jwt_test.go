package utils

import (
	"strings"
	"testing"
	"time"
)

func TestDeviceTokens_RoundTrip(t *testing.T) {
	tokens := NewDeviceTokens("s3cret", time.Hour)
	id := NewDeviceID()

	signed, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	got, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != id {
		t.Errorf("Validate() = %q, want %q", got, id)
	}
}

func TestDeviceTokens_Rejects(t *testing.T) {
	tokens := NewDeviceTokens("s3cret", time.Hour)
	id := NewDeviceID()

	otherKey, _ := NewDeviceTokens("other", time.Hour).Issue(id)
	expired, _ := NewDeviceTokens("s3cret", -time.Minute).Issue(id)
	notUUID, _ := tokens.Issue("../../etc")

	for name, tok := range map[string]string{
		"wrong key": otherKey,
		"expired":   expired,
		"not uuid":  notUUID,
		"garbage":   "a.b.c",
		"tampered":  strings.Replace(otherKey, ".", ".x", 1),
	} {
		if _, err := tokens.Validate(tok); err == nil {
			t.Errorf("%s: Validate() error = nil", name)
		}
	}
}

func TestDeviceTokens_NoSecret(t *testing.T) {
	if _, err := NewDeviceTokens("", time.Hour).Issue(NewDeviceID()); err == nil {
		t.Error("Issue() with empty secret error = nil")
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token format")
)

const voterTokenBytes = 24 // 192 bits of entropy

// GenerateAdminKey creates an HMAC-based admin key for a poll
// This is deterministic and verifiable
func GenerateAdminKey(pollID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the poll
func ValidateAdminKey(pollID, adminKey, salt string) error {
	expected := GenerateAdminKey(pollID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken creates a random secure token for a voter
// The same token is sent with every vote so later votes replace earlier ones
func GenerateVoterToken() (string, error) {
	b := make([]byte, voterTokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	// URL-safe base64 without padding
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateVoterToken checks that a token has the shape GenerateVoterToken produces
func ValidateVoterToken(token string) error {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) != voterTokenBytes {
		return ErrInvalidToken
	}
	return nil
}

// VoterID derives the stored voter identifier from a voter token
// Raw tokens never reach the database
func VoterID(token, salt string) string {
	h := hmac.New(sha256.New, voterKey(salt))
	h.Write([]byte(token))
	sum := h.Sum(nil)
	// 128 bits is plenty to keep voters apart within a poll
	return hex.EncodeToString(sum[:16])
}

// voterKey derives the voter ID key from the salt, so voter IDs and admin
// keys never share an HMAC key
func voterKey(salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("voter"))
	return h.Sum(nil)
}

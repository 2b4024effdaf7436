// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

var ErrInvalidToken = errors.New("invalid token format")

// Verification codes are six digits, 100000-999999 inclusive.
const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateVerificationCode creates a uniformly random 6-digit numeric code.
// crypto/rand keeps the code unguessable; math/rand would be predictable
// from its seed.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// GenerateToken creates an opaque bearer token with 256 bits of entropy.
// The token carries no information about the voter it will be bound to;
// the store holds the only mapping back to an email.
func GenerateToken() (string, error) {
	b := make([]byte, 32) // 32 bytes = 256 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CodesEqual compares a submitted code against the stored one in constant
// time. Exact string match: "012345" and "12345" are different codes.
func CodesEqual(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// ValidTokenFormat rejects strings that cannot be a token we minted
// (64 lowercase hex characters) before any store lookup happens.
func ValidTokenFormat(token string) error {
	if len(token) != 64 {
		return ErrInvalidToken
	}
	if _, err := hex.DecodeString(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

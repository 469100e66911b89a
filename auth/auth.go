// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// NewID returns a random UUIDv4 string for database records
func NewID() string {
	return uuid.NewString()
}

// IsID reports whether s parses as a UUID
func IsID(s string) bool {
	return uuid.Validate(s) == nil
}

func mac(salt, msg string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	return h.Sum(nil)
}

// GenerateAdminKey derives the admin key for a pack.
// The key is never stored; it is recomputed from the pack ID on every check.
func GenerateAdminKey(packID, salt string) string {
	return base64.RawURLEncoding.EncodeToString(mac(salt, "admin:"+packID))
}

// ValidateAdminKey checks adminKey against the key derived for packID
func ValidateAdminKey(packID, adminKey, salt string) error {
	if adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(packID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateShareSlug creates the short public slug used in /p/{slug} links
func GenerateShareSlug(packID, salt string) string {
	return base62Encode(mac(salt, "slug:"+packID)[:8])
}

// base62Encode renders up to the first 8 bytes of data as a base62 number
func base62Encode(data []byte) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}
	if num == 0 {
		return "0"
	}

	out := make([]byte, 0, 11)
	for num > 0 {
		out = append(out, alphabet[num%62])
		num /= 62
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// HashClientIP returns a salted one-way hash of a client address, used as
// the rate limiter key so raw addresses are never held in memory or logged.
func HashClientIP(ip, salt string) string {
	return hex.EncodeToString(mac(salt, "ip:"+ip)[:8])
}

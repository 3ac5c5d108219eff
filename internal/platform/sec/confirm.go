// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

// clockSkew is the tolerance for codes stamped slightly in the future.
const clockSkew = time.Minute

// CodeSubject is the user state a confirmation code is bound to.
//
// Any change to Version or Email invalidates every code issued before it.
type CodeSubject struct {
	UserID  int64
	Email   string
	Version int64
}

// ConfirmationCodes issues and verifies stateless one-time codes.
//
// A code has the form "<base36 issued-at>-<hex HMAC-SHA256>". Nothing is stored
// server-side; one-time use comes from bumping the subject's Version after a
// successful redemption.
type ConfirmationCodes struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewConfirmationCodes derives the signing key from secret with HKDF-SHA256.
func NewConfirmationCodes(secret, info string, ttl time.Duration) (*ConfirmationCodes, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: confirmation secret is empty")
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("sec: failed to derive confirmation key: %w", err)
	}

	return &ConfirmationCodes{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy that reads the current time from now.
func (codes *ConfirmationCodes) WithClock(now func() time.Time) *ConfirmationCodes {
	clone := *codes
	clone.now = now
	return &clone
}

// Generate returns a fresh code for subject.
func (codes *ConfirmationCodes) Generate(subject CodeSubject) string {
	issuedAt := codes.now().Unix()
	return strconv.FormatInt(issuedAt, 36) + "-" + hex.EncodeToString(codes.sign(subject, issuedAt))
}

// Verify reports whether code was issued for subject and has not expired.
func (codes *ConfirmationCodes) Verify(subject CodeSubject, code string) bool {
	stamp, mac, found := strings.Cut(code, "-")
	if !found || stamp == "" || mac == "" {
		return false
	}

	issuedAt, err := strconv.ParseInt(stamp, 36, 64)
	if err != nil {
		return false
	}

	issued := time.Unix(issuedAt, 0)
	now := codes.now()
	if issued.After(now.Add(clockSkew)) || now.Sub(issued) > codes.ttl {
		return false
	}

	provided, err := hex.DecodeString(mac)
	if err != nil {
		return false
	}

	return hmac.Equal(provided, codes.sign(subject, issuedAt))
}

func (codes *ConfirmationCodes) sign(subject CodeSubject, issuedAt int64) []byte {
	mac := hmac.New(sha256.New, codes.key)
	fmt.Fprintf(mac, "%d|%d|%s|%d", subject.UserID, subject.Version, strings.ToLower(subject.Email), issuedAt)
	return mac.Sum(nil)
}

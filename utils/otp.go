package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const verifyCodePrefix = "verify:"

// ErrCodeMismatch is returned when a submitted verification code is wrong or expired.
var ErrCodeMismatch = errors.New("verification code is invalid or expired")

// generateSecureCode generates a secure random code of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// IssueVerificationCode generates an email verification code and stores it in
// Redis with a 15-minute TTL, keyed by the user's email. Returns the code so
// the caller can mail it.
func IssueVerificationCode(email string) (string, error) {
	code, err := generateSecureCode(6)
	if err != nil {
		return "", err
	}

	client := GetOTPCacheClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Set(ctx, verifyCodePrefix+email, code, 15*time.Minute).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	return code, nil
}

// CheckVerificationCode compares the submitted code against the stored one and
// consumes it on success.
func CheckVerificationCode(email, provided string) error {
	client := GetOTPCacheClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stored, err := client.Get(ctx, verifyCodePrefix+email).Result()
	if err == redis.Nil {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to read verification code: %w", err)
	}
	if stored != provided {
		return ErrCodeMismatch
	}
	_ = client.Del(ctx, verifyCodePrefix+email).Err()
	return nil
}

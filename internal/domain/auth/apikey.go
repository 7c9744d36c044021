package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-faster/errors"
)

// ErrUnauthorized is returned when a staff key is unknown or inactive.
var ErrUnauthorized = errors.New("unauthorized")

// StaffKey identifies a staff member allowed to use the admin views.
type StaffKey struct {
	ID      string
	KeyHash string
	Name    string
	Active  bool
}

// HashKey returns the hex encoded HMAC-SHA256 of key under pepper.
func HashKey(key string, pepper []byte) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

// Repository provides lookup and provisioning of staff keys.
type Repository interface {
	// FindByHash returns the active key with the given hash.
	FindByHash(ctx context.Context, hash string) (*StaffKey, error)
	Upsert(ctx context.Context, k StaffKey) error
}

package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyLen  = 64
	blockKeyLen = 32
)

// deriveKeys expands the configured secret into independent authentication
// and encryption keys for securecookie.
func deriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		return nil, nil, errors.New("session secret is required")
	}
	hashKey, err = expand(secret, "classroom session hash", hashKeyLen)
	if err != nil {
		return nil, nil, err
	}
	blockKey, err = expand(secret, "classroom session block", blockKeyLen)
	if err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func expand(secret, info string, n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyPrefix marks keys generated by this service.
const APIKeyPrefix = "bd_"

// GenerateAPIKey returns a fresh random API key.
func GenerateAPIKey() (string, error) {
	secret, err := GenerateSecureRandomString(24)
	if err != nil {
		return "", err
	}
	return APIKeyPrefix + secret, nil
}

// HashAPIKey hashes a plaintext API key using bcrypt.
func HashAPIKey(apiKey string) (string, error) {
	if apiKey == "" {
		return "", errors.New("api key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckAPIKey compares a plaintext API key with a bcrypt hash.
func CheckAPIKey(apiKey, hash string) bool {
	if apiKey == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey)) == nil
}

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/yukikurage/scrum-board-api/internal/constants"
)

// GenerateTokenKey returns a random 40 character hex API key.
func GenerateTokenKey() (string, error) {
	bytes := make([]byte, constants.TokenKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Identifier formats: a short typeable prefix plus an uppercase slice of a
// random UUID. The prefix tells token and presence ids apart at a glance.
const (
	TokenIDPrefix    = "TKN-"
	TokenIDLength    = 6
	PresenceIDPrefix = "PR-"
	PresenceIDLength = 8
)

// GenerateTokenID creates a QR token identifier, e.g. TKN-A3F09B.
func GenerateTokenID() string {
	return TokenIDPrefix + randomSuffix(TokenIDLength)
}

// GeneratePresenceID creates a presence record identifier, e.g. PR-0D4C21FA.
func GeneratePresenceID() string {
	return PresenceIDPrefix + randomSuffix(PresenceIDLength)
}

func randomSuffix(length int) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:length])
}

package response

import "time"

// TokenResponse returns the issued token and its expiry. The issuance
// timestamp is stored but deliberately not part of the contract.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

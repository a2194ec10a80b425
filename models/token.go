package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is an issued or parsed JWT session token. The "sub" claim carries the
// user identifier; credvault has no other principal concept.
type Token struct {
	// Token gives access to the low-level JWT operations (signing, claim
	// inspection). Only the compact string form crosses process boundaries.
	*jwt.Token `json:"-"`

	// RegisteredClaims exposes the standard RFC 7519 claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature), the
	// value that travels in the Authorization header.
	SignedString string `json:"-"`

	// UserID caches the parsed "sub" claim so callers do not re-parse it.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64 user identifier.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization. Implements [fmt.Stringer].
func (t *Token) String() string {
	return t.SignedString
}

// Package utils holds small helpers shared across the application: context
// keys, HTTP response writing, and JWT issuing and parsing.
package utils

import (
	"context"
)

// contextKey is a private key type; it cannot collide with string keys used
// by other packages.
type contextKey string

// String implements [fmt.Stringer].
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated principal's identifier in a request
// context. The auth middleware writes it; handlers read it back with
// [GetUserIDFromContext].
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the user identifier placed in ctx by the
// auth middleware. ok is false when the value is missing or mistyped.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

package models

import "time"

// ClientSession is the locally cached login state of the terminal client.
// It carries the bearer token between vaultctl invocations so the user does
// not have to log in before every command.
type ClientSession struct {
	UserID  int64     `json:"user_id"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

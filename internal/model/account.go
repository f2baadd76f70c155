// Package model defines the data structures used throughout the application.
package model

// Account represents a registered user of the diary system.
//
// ID is assigned by the storage layer on insert and never changes. Username
// is unique across all accounts and immutable after registration. Password
// is the stored credential, compared verbatim at login; it is never
// serialized in API responses.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

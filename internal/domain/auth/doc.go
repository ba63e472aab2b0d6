// Package auth defines sessions, linked accounts, verification records and
// the contracts of the sign-in services.
package auth

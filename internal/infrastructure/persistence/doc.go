// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer for users, sessions, linked accounts,
// verification records and contact messages. Driver errors are mapped to the
// domain sentinels so callers can rely on errors.Is.
package persistence

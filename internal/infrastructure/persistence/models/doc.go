// Package models contains GORM database models for infrastructure layer.
// These models handle database persistence and are separated from domain entities
// so the domain packages stay free of ORM tags.
package models

// Package validators hosts the shared validator instance, its English
// messages and custom validation rules.
package validators

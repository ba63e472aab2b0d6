// Package cryptography provides password hashing and signed magic-link tokens.
package cryptography

// Package messages holds contact form submissions.
package messages

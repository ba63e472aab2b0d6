// Package actions binds submitted forms to the auth and message services.
//
// Every action validates its form, delegates to exactly one service call
// and returns a Result. Errors never leave this package: validation
// failures surface their first translated message, known domain errors
// map to fixed user-facing messages and anything else is logged and
// replaced by a generic message.
package actions

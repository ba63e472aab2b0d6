package web

import (
	v1 "github.com/dwestland/auth-starter/internal/api/rest/v1"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
)

// presentData replaces domain values in action results with their public
// views. Session tokens only ever travel in the cookie.
func presentData(data any) any {
	switch v := data.(type) {
	case *auth.SessionGrant:
		return v1.NewSessionResponse(v)
	case *messages.Message:
		return v1.NewMessageResponse(v)
	default:
		return data
	}
}

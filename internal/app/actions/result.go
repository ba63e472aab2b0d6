package actions

// User-facing failure messages
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User already exists"
	MsgInvalidLink        = "This sign-in link is invalid or has expired"
	MsgGeneric            = "Something went wrong. Please try again."
)

// MsgMagicLinkSent is the Data of a successful MagicLinkAction.
const MsgMagicLinkSent = "Check your email for a sign-in link"

// Result is the tagged outcome of an action.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK returns a successful Result carrying data.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail returns a failed Result carrying msg.
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

package core

// UnknownUserName is the display-name sentinel for connections whose
// identity was never attached or carries no display name.
const UnknownUserName = "Unknown User"

// Identity is the authenticated user attached to a connection.
// It is established by the transport at connection time and immutable for
// the connection's lifetime.
type Identity struct {
	UserID      string
	DisplayName string
}

// Name returns the display name, falling back to the sentinel.
func (id *Identity) Name() string {
	if id == nil || id.DisplayName == "" {
		return UnknownUserName
	}
	return id.DisplayName
}

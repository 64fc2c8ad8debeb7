package domain

// ConnectionID is the opaque identifier of one live transport session.
// Unique for the session's lifetime, never reused while the session is open.
type ConnectionID string

// Identity holds what a connection has told us about itself after the
// handshake. All fields are optional until the matching join event arrives.
type Identity struct {
	UserID      string
	UserName    string
	CommunityID string
}

// Identified reports whether the connection has completed identification.
// Unidentified connections stay invisible in presence snapshots.
func (i Identity) Identified() bool {
	return i.UserID != ""
}

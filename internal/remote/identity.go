package remote

// Identity exposes the authenticated user, if any. An empty id means the
// session is not authenticated.
type Identity interface {
	CurrentUserID() string
}

// StaticIdentity is an Identity fixed at construction, fed from configuration.
type StaticIdentity struct {
	UserID string
}

func (s StaticIdentity) CurrentUserID() string {
	return s.UserID
}

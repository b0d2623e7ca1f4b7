// model/session.go
package model

// Session is the identity snapshot derived from a verified bearer
// token. It is read-only to every controller; only the verifier that
// produced it may build one.
type Session struct {
	Subject  string
	Username string
	Token    string
	Roles    []string
}

// HasRole reports membership in a named role grouping. Nil-safe, so
// guard checks can run before authentication completes.
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authenticated reports whether a verified token is present.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

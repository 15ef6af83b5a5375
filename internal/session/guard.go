package session

// Allowed is the route guard: it reports whether a protected view may
// render for the current session. Callers that get false must switch
// to the login view instead of rendering any protected content.
func Allowed(s *Store) bool {
	return s.User() != nil
}

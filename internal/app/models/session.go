package models

// Session is the derived, never-persisted record of the current
// authenticated identity. Exactly one instance exists process-wide.
// Invariant: !IsLoggedIn implies ID == 0 and !IsAdmin.
type Session struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	IsAdmin    bool   `json:"isAdmin"`
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Photo      string `json:"photo"`
	Mail       string `json:"mail"`
}

// AnonymousSession returns the unauthenticated default
func AnonymousSession() Session {
	return Session{}
}

// SessionFromProfile maps a confirmed profile lookup into session
// fields. defaultAvatar substitutes for an absent photo so rendering
// never sees an empty URL.
func SessionFromProfile(p *Profile, defaultAvatar string) Session {
	return Session{
		IsLoggedIn: true,
		IsAdmin:    p.IsAdmin(),
		ID:         p.ID,
		Name:       p.Username,
		Photo:      p.PhotoOrDefault(defaultAvatar),
		Mail:       p.Email,
	}
}

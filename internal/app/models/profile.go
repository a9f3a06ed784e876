package models

// Profile type identifiers used by the backend. The member value is
// fixed for self-registration; the admin value is the sole
// authorization predicate.
const (
	ProfileTypeMember int64 = 1
	ProfileTypeAdmin  int64 = 2
)

// ProfileType is a small closed lookup ("member", "admin") referenced,
// never owned, by Profile
type ProfileType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag is an interest label, many-to-many with Profile
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Profile defines a community member as stored by the backend.
// Username uniqueness is enforced remotely. Photo is a URL and may be
// empty; the default avatar is substituted at presentation time.
type Profile struct {
	ID            int64        `json:"id"`
	Username      string       `json:"username"`
	Password      string       `json:"password"`
	Photo         string       `json:"photo"`
	Email         string       `json:"email"`
	ProfileTypeID int64        `json:"profileTypeId"`
	ProfileType   *ProfileType `json:"profileType,omitempty"` // Relation, server-computed
	Tags          []Tag        `json:"tags,omitempty"`        // Relation, server-computed
}

// IsAdmin reports whether the profile carries the administrator type
func (p *Profile) IsAdmin() bool {
	return p.ProfileTypeID == ProfileTypeAdmin
}

// PhotoOrDefault returns the profile photo URL, falling back to the
// given default avatar when none is set
func (p *Profile) PhotoOrDefault(defaultAvatar string) string {
	if p.Photo != "" {
		return p.Photo
	}
	return defaultAvatar
}

package models

// Review is a hardware review as listed on the landing feed. Comments
// are fetched separately and merged in only after both calls succeed.
type Review struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Desc     string    `json:"desc"`
	Img      string    `json:"img"`
	Date     DateTime  `json:"date"`
	Comments []Comment `json:"comments,omitempty"`
}

// CommentAuthor is the embedded, server-computed view of the profile
// that wrote a comment. The back-reference is non-owning: after a
// profile delete the author may be gone and the comment survives.
type CommentAuthor struct {
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
	Tags     []Tag  `json:"tags,omitempty"`
}

// UnknownAuthor is rendered for comments whose profile back-reference
// no longer resolves.
var UnknownAuthor = CommentAuthor{Username: "Unknown user"}

// Comment belongs to exactly one review and references exactly one
// profile by id.
type Comment struct {
	ID       int64          `json:"id"`
	UserID   int64          `json:"userId"`
	ReviewID int64          `json:"reviewId,omitempty"`
	Content  string         `json:"content"`
	Date     DateTime       `json:"date"`
	User     *CommentAuthor `json:"user,omitempty"` // Relation, server-computed
}

// Author returns the embedded author, or the unknown-user fallback for
// orphaned back-references.
func (c *Comment) Author() CommentAuthor {
	if c.User != nil && c.User.Username != "" {
		return *c.User
	}
	return UnknownAuthor
}

package domain

// User mirrors a row of the NocoDB user table. The lowercase json keys are
// rewritten to the backend's capitalized columns by the nocodb client; the
// misspelled LogedInLast column is what the base actually has.
type User struct {
	ID           any       `json:"id,omitempty"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email,omitempty"`
	Password     string    `json:"password,omitempty"`
	TreesPlanted int       `json:"treesPlanted,omitempty"`
	MoneyDonated float64   `json:"moneyDonated,omitempty"`
	SignUpDate   string    `json:"signUpDate,omitempty"`
	LogedInLast  string    `json:"logedInLast,omitempty"`
	ProfilePic   []Picture `json:"profilePicture,omitempty"`
}

// Picture is a NocoDB attachment cell value.
type Picture struct {
	ID       any    `json:"id,omitempty"`
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// SanitizedUser is the subset of user fields safe to hand out: it is what
// token responses carry and the only user shape a client ever persists.
// The credential hash never leaves the service.
type SanitizedUser struct {
	ID       any    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Sanitize strips the user down to its persistable subset.
func (u *User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

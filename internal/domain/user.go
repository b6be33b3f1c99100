package domain

// User is the profile returned by the backend for an authenticated identity.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Registration is the payload for creating a new account. Field validation
// (password length, email format, confirmation match) happens at the edge;
// by the time this reaches the session store it is trusted input.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

package domain

// User is a registered guest or property owner. Email is unique.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Session is returned on register and login.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

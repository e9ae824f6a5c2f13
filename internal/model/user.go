package model

// User represents a login account. Accounts are provisioned out-of-band
// (cmd/create-user); there is no registration route.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	// Password is stored and compared as plaintext for compatibility
	// with the legacy dataset.
	Password string `json:"-"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

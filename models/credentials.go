package models

// Credentials is what a visitor types into the login or signup form.
type Credentials struct {
	Email    string
	Password string
}

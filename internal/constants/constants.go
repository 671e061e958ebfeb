package constants

const (
	// ContextKeyUser holds the *models.User resolved from a bearer token
	ContextKeyUser = "user"

	// BearerPrefix precedes the token in the Authorization header
	BearerPrefix = "Bearer "

	MessageRegistered         = "User registered successfully"
	MessageLoggedIn           = "Login successful"
	MessageUserNotFound       = "User not found"
	MessageInvalidCredentials = "Invalid credentials"
)

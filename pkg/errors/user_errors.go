package errors

var (
	// Domain errors — used in usecase/repository
	ErrUsernameTaken      = Conflict("username is already taken")
	ErrEmailTaken         = Conflict("email is already in use")
	ErrUserNotFound       = NotFound("user not found")
	ErrInvalidUsername    = InvalidInput("username must be 3-32 chars, lowercase letters, numbers and underscores only")
	ErrInvalidDisplayName = InvalidInput("display name cannot be empty")
	ErrInvalidEmail       = InvalidInput("email address is not valid")
	ErrBadCredentials     = Unauthorized("invalid username or password")
)

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}

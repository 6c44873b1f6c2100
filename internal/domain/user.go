package domain

// User represents a registered user of the quiz application.
//
// Users are keyed by a surrogate ID assigned by the store; TelegramID is
// the external identity supplied by the chat platform and is unique across
// all users. LastName and Username are optional and nil when the platform
// did not supply them. Language is the user's locale tag (for example
// "en_AU"); parsing and canonicalization of the tag happen outside this
// core.
type User struct {
	ID         int64
	TelegramID int64

	FirstName string
	LastName  *string
	Username  *string

	Language string
}

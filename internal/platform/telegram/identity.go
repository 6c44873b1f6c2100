// Package telegram adapts identity data from the Telegram Bot API into
// the shape the user service consumes. It is the only place the core
// touches the bot API types; the services themselves stay
// platform-agnostic.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/phrazzld/quiz-api/internal/service"
)

// DefaultLanguage is used when the Telegram user carries no language
// code, which happens for users who never set one in their client.
const DefaultLanguage = "en"

// Identity builds a service.Identity from a Telegram user. Empty optional
// fields become nil rather than empty strings, so the stored record
// distinguishes "not supplied" from an actual empty value.
func Identity(u *tgbotapi.User) service.Identity {
	identity := service.Identity{
		TelegramID: u.ID,
		FirstName:  u.FirstName,
		Language:   u.LanguageCode,
	}
	if identity.Language == "" {
		identity.Language = DefaultLanguage
	}
	if u.LastName != "" {
		lastName := u.LastName
		identity.LastName = &lastName
	}
	if u.UserName != "" {
		username := u.UserName
		identity.Username = &username
	}
	return identity
}

package ratelimit

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const deniedKey = "Access denied. Retry in %d seconds"

func init() {
	_ = message.SetString(language.Spanish, deniedKey, "Acceso denegado. Volver a intentar en %d segundos")
	_ = message.SetString(language.English, deniedKey, "Access denied. Retry in %d seconds")
}

// DefaultLanguage is the locale of client-facing denial messages.
var DefaultLanguage = language.Spanish

// DeniedMessage renders the denial text for the given wait in seconds.
func DeniedMessage(tag language.Tag, seconds int) string {
	return message.NewPrinter(tag).Sprintf(deniedKey, seconds)
}

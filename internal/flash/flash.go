// Package flash stores one-shot notification messages in the session.
package flash

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"taskflow/internal/constants"
)

// Message is a flashed notification with its display category.
type Message struct {
	Category string
	Text     string
}

// Success flashes a success message.
func Success(c *gin.Context, text string) {
	add(c, constants.FlashSuccess, text)
}

// Danger flashes an error message.
func Danger(c *gin.Context, text string) {
	add(c, constants.FlashDanger, text)
}

func add(c *gin.Context, category, text string) {
	session := sessions.Default(c)
	session.AddFlash(text, category)
	// Save failures leave the message behind; the page still renders.
	_ = session.Save()
}

// Take drains and returns all pending messages, success first.
func Take(c *gin.Context) []Message {
	session := sessions.Default(c)

	var messages []Message
	for _, category := range []string{constants.FlashSuccess, constants.FlashDanger} {
		for _, value := range session.Flashes(category) {
			if text, ok := value.(string); ok {
				messages = append(messages, Message{Category: category, Text: text})
			}
		}
	}

	if len(messages) > 0 {
		_ = session.Save()
	}
	return messages
}

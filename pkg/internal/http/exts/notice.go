package exts

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const CookieNotice = "polls_notice"

// SetNotice stores a one-shot message for the next page the client is sent to.
func SetNotice(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieNotice,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ConsumeNotice(c *fiber.Ctx) string {
	raw := c.Cookies(CookieNotice)
	if len(raw) == 0 {
		return ""
	}
	c.ClearCookie(CookieNotice)
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

// README: Locale negotiation from ?lang= and Accept-Language.
package middleware

import (
	"github.com/gin-gonic/gin"

	"freightcalc/internal/locale"
)

const translatorKey = "translator"

func Locale(catalog *locale.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := catalog.Match(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(translatorKey, catalog.For(tag))
		c.Header("Content-Language", tag.String())
		c.Next()
	}
}

// Translator returns the request translator, or the catalog default when
// the Locale middleware did not run.
func Translator(c *gin.Context, catalog *locale.Catalog) locale.Translator {
	if v, ok := c.Get(translatorKey); ok {
		if t, ok := v.(locale.Translator); ok {
			return t
		}
	}
	return catalog.For(catalog.Languages()[0])
}

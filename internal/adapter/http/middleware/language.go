package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DeTr1ll/Task-Manager/pkg/translator"
)

const langKey = "lang"

// LanguageMiddleware stores the request language for error translation.
// Only the first Accept-Language entry's primary subtag is kept, so
// "fr-CA,fr;q=0.9" resolves to "fr".
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, primaryLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}

func primaryLanguage(header string) string {
	lang := header
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	if i := strings.Index(lang, "-"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return translator.LanguageEn
	}
	return lang
}

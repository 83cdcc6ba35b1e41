package tests

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/pkg/translator"

	"github.com/gin-gonic/gin"
)

const translationFolder = "../../../../../pkg/translator/translation"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  translationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	os.Exit(m.Run())
}

// authStub satisfies ports.AuthService for session-guarded routes: any
// non-empty token resolves to the configured user.
type authStub struct {
	userID uint64
}

func (a authStub) Register(_ context.Context, _ domain.RegisterInput) (domain.User, error) {
	return domain.User{}, errors.New("not implemented")
}

func (a authStub) Login(_ context.Context, _, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func (a authStub) UserIDFromToken(token string) (uint64, error) {
	if token == "" {
		return 0, errors.New("empty token")
	}
	return a.userID, nil
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "session-token"})
	return req
}

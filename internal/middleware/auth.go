// Package middleware содержит HTTP middleware сервиса Gestor.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const sessionTokenKey contextKey = "sessionToken"

const (
	sessionCookieName = "gestor_session"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// SessionChecker сообщает, соответствует ли токен открытой сессии.
type SessionChecker func(token string) bool

// SessionMiddleware пропускает запросы только с подписанным cookie открытой сессии.
type SessionMiddleware struct {
	secretKey []byte
	valid     SessionChecker
}

// NewSessionMiddleware создаёт middleware с указанным секретом подписи.
// При пустом секрете генерируется случайный ключ: cookie перестают быть
// действительными после перезапуска.
func NewSessionMiddleware(secret string, valid SessionChecker) *SessionMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("gestor-default-secret")
		}
	}

	return &SessionMiddleware{
		secretKey: key,
		valid:     valid,
	}
}

// Middleware проверяет cookie сессии и добавляет токен в контекст запроса.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		token, ok := m.parseCookie(cookie.Value)
		if !ok || (m.valid != nil && !m.valid(token)) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie устанавливает подписанный cookie для токена сессии.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token + "." + m.sign(token),
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сессии у клиента.
func (m *SessionMiddleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) sign(token string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (m *SessionMiddleware) parseCookie(value string) (string, bool) {
	token, signature, found := strings.Cut(value, ".")
	if !found || token == "" {
		return "", false
	}

	if !hmac.Equal([]byte(signature), []byte(m.sign(token))) {
		return "", false
	}

	return token, true
}

// GetSessionTokenFromContext извлекает токен сессии из контекста запроса.
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenKey).(string)
	return token, ok
}

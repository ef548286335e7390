// Package id генерирует идентификаторы сущностей.
// Используется UUIDv7: он упорядочен по времени создания.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator создаёт новый идентификатор.
type Generator func() string

// New генерирует новый UUIDv7 в строковом виде.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

// Token генерирует случайный непрозрачный токен сессии.
func Token() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Short возвращает короткий номер для чеков: последние шесть символов в верхнем регистре.
func Short(id string) string {
	s := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(s) <= 6 {
		return s
	}
	return s[len(s)-6:]
}

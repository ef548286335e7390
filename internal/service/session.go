package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/id"
	"github.com/mmeshcher/gestor/internal/model"
	"github.com/mmeshcher/gestor/internal/validation"
)

// Login открывает сессию. Пароль не проверяется и не хранится: сессия лишь
// отмечает вход в интерфейс. При регистрации название компании становится
// названием магазина.
func (s *Service) Login(ctx context.Context, companyName, password string, register bool) (model.Session, error) {
	name, err := validation.Credentials(companyName, password)
	if err != nil {
		return model.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := model.Session{
		CompanyName: name,
		LastLogin:   s.engine.Now(),
		Token:       id.Token(),
	}
	s.state.Session = &session

	if register {
		cfg := model.DefaultShopConfig()
		cfg.Name = name
		s.state.Config = cfg
	}

	s.persist(ctx)
	s.logger.Info("session opened", zap.String("company", name), zap.Bool("register", register))

	return session, nil
}

// Logout закрывает текущую сессию.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Session == nil {
		return
	}
	s.state.Session = nil
	s.persist(ctx)
}

// Session возвращает текущую сессию или nil.
func (s *Service) Session(ctx context.Context) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Session == nil {
		return nil
	}
	session := *s.state.Session
	return &session
}

// ValidSession сообщает, соответствует ли токен открытой сессии.
func (s *Service) ValidSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return token != "" && s.state.Session != nil && s.state.Session.Token == token
}

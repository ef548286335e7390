package service

import (
	"context"

	"github.com/mmeshcher/gestor/internal/stats"
)

// Dashboard возвращает показатели главной панели.
func (s *Service) Dashboard(ctx context.Context) stats.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return stats.BuildDashboard(s.state, s.engine.Now())
}

// Finances возвращает финансовую сводку.
func (s *Service) Finances(ctx context.Context) stats.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return stats.Summarize(s.state.Sales, s.state.Expenses)
}

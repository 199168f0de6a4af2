package service

import (
	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/config"
	"github.com/dom/touchline-tactician/internal/repository"
)

type Services struct {
	Auth *AuthService
	Plan *PlanService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, publisher EventPublisher, clk clock.Clock) *Services {
	return &Services{
		Auth: NewAuthService(repos.Coach, repos.Session, cfg, clk),
		Plan: NewPlanService(repos.Plan, publisher, clk),
	}
}

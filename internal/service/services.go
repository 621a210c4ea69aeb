package service

import (
	"github.com/jslate/trophy-share/internal/config"
	"github.com/jslate/trophy-share/internal/repository"
)

type Services struct {
	Session *SessionService
	Trophy  *TrophyService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Session: NewSessionService(repos.Session, cfg),
		Trophy:  NewTrophyService(repos.Trophy, repos.Session),
	}
}

package services

import (
	"errors"
	"strings"

	"furniture_back_end/internal/database"
	"furniture_back_end/internal/models"

	"go.uber.org/zap"
)

// AuthService is the member login. It is a mock: any phone and password
// sign in, and passwords are never stored.
type AuthService struct {
	sessions *database.SessionStore
	log      *zap.Logger
}

func NewAuthService(sessions *database.SessionStore, log *zap.Logger) *AuthService {
	return &AuthService{sessions: sessions, log: log}
}

type LoginInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
	LineID   string `json:"lineId"`
}

func (s *AuthService) Login(sessionID string, in LoginInput) (models.User, error) {
	if strings.TrimSpace(in.Phone) == "" {
		return models.User{}, invalid("phone", "required")
	}
	if in.Password == "" {
		return models.User{}, invalid("password", "required")
	}
	u := models.User{
		Name:    "Test User",
		Phone:   strings.TrimSpace(in.Phone),
		Address: "Test Address",
	}
	if err := s.signIn(sessionID, u); err != nil {
		return models.User{}, err
	}
	s.log.Info("🔑 member signed in", zap.String("phone", u.Phone))
	return u, nil
}

func (s *AuthService) Register(sessionID string, in RegisterInput) (models.User, error) {
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"phone", in.Phone},
		{"password", in.Password},
		{"address", in.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return models.User{}, invalid(r.field, "required")
		}
	}
	u := models.User{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		LineID:  strings.TrimSpace(in.LineID),
	}
	if err := s.signIn(sessionID, u); err != nil {
		return models.User{}, err
	}
	s.log.Info("🆕 member registered", zap.String("phone", u.Phone))
	return u, nil
}

// Logout clears the user. The cart stays with the session.
func (s *AuthService) Logout(sessionID string) error {
	err := s.sessions.ClearUser(sessionID)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	return err
}

func (s *AuthService) Me(sessionID string) (models.User, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.User == nil {
		return models.User{}, ErrNotAuthenticated
	}
	return *sess.User, nil
}

func (s *AuthService) signIn(sessionID string, u models.User) error {
	if err := s.sessions.SetUser(sessionID, u); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotAuthenticated
		}
		return err
	}
	return nil
}

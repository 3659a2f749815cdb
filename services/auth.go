package services

import (
	"errors"
	"time"

	"onboarding-service/auth"
	"onboarding-service/models"
)

type AuthService struct {
	repo models.Repository
}

func NewAuthService(repo models.Repository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a client at stage 1 together with one default note per
// note type. The rows are written in a single transaction: a failed note
// seeding never leaves a client without its notes.
func (s *AuthService) Register(fullName, email, password string) (*models.User, error) {
	if _, err := s.repo.GetUserByEmail(email); err == nil {
		return nil, models.ErrUserAlreadyExists
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	client := models.NewClient(email, hash, fullName)
	now := time.Now()
	types := models.NoteTypes()
	notes := make([]*models.Note, 0, len(types))
	for _, noteType := range types {
		notes = append(notes, models.NewDefaultNote(noteType, now))
	}

	if err := s.repo.CreateClientWithNotes(client, notes); err != nil {
		return nil, err
	}
	return client, nil
}

// SignIn checks the password and issues a token for the user.
func (s *AuthService) SignIn(email, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", models.ErrWrongPassword
	}
	token, err := auth.SignToken(user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

package services

import (
	"errors"
	"testing"

	"onboarding-service/models"
)

func TestRegisterSeedsDefaultNotes(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthService(repo)

	client, err := svc.Register("Anna Client", "anna@agency.com", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if client.Role != models.RoleClient {
		t.Errorf("Expected role %q, got %q", models.RoleClient, client.Role)
	}
	if client.ActiveStage != 1 {
		t.Errorf("Expected active stage 1, got %d", client.ActiveStage)
	}
	if len(client.FormAnswers) != models.FormAnswersCount {
		t.Errorf("Expected %d form answer slots, got %d", models.FormAnswersCount, len(client.FormAnswers))
	}
	if len(client.OnboardingStages) != models.OnboardingStagesCount {
		t.Errorf("Expected %d onboarding stages, got %d", models.OnboardingStagesCount, len(client.OnboardingStages))
	}

	for _, noteType := range models.NoteTypes() {
		notes, err := repo.FindNotesByRecipientAndType("anna@agency.com", noteType)
		if err != nil {
			t.Fatalf("FindNotesByRecipientAndType returned error: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("Expected one %s note, got %d", noteType, len(notes))
		}
		if notes[0].Header != noteType.DefaultHeader() {
			t.Errorf("%s: expected header %q, got %q", noteType, noteType.DefaultHeader(), notes[0].Header)
		}
		if notes[0].Content != noteType.DefaultContent() {
			t.Errorf("%s: expected content %q, got %q", noteType, noteType.DefaultContent(), notes[0].Content)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthService(repo)

	if _, err := svc.Register("Anna Client", "anna@agency.com", "s3cret"); err != nil {
		t.Fatalf("First Register returned error: %v", err)
	}
	if _, err := svc.Register("Another Anna", "anna@agency.com", "other"); !errors.Is(err, models.ErrUserAlreadyExists) {
		t.Errorf("Expected ErrUserAlreadyExists, got %v", err)
	}

	if len(repo.notes) != len(models.NoteTypes()) {
		t.Errorf("Expected %d notes after failed duplicate, got %d", len(models.NoteTypes()), len(repo.notes))
	}
}

func TestSignIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := newFakeRepo()
	svc := NewAuthService(repo)

	if _, err := svc.Register("Anna Client", "anna@agency.com", "s3cret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, token, err := svc.SignIn("anna@agency.com", "s3cret")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if user.Email != "anna@agency.com" {
		t.Errorf("Expected email %q, got %q", "anna@agency.com", user.Email)
	}
	if token == "" {
		t.Error("Expected a non-empty token")
	}

	if _, _, err := svc.SignIn("anna@agency.com", "wrong"); !errors.Is(err, models.ErrWrongPassword) {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
	if _, _, err := svc.SignIn("nobody@agency.com", "s3cret"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

package services

import (
	"time"

	"onboarding-service/models"
)

// testDate returns a fixed base date shifted by n days.
func testDate(n int) time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// fakeRepo is an in-memory models.Repository used by the service tests.
type fakeRepo struct {
	users   map[string]*models.User
	notes   map[uint]*models.Note
	reports map[uint]*models.Report

	nextUserID   uint
	nextNoteID   uint
	nextReportID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:   map[string]*models.User{},
		notes:   map[uint]*models.Note{},
		reports: map[uint]*models.Report{},
	}
}

func (r *fakeRepo) CreateClientWithNotes(client *models.User, notes []*models.Note) error {
	if _, exists := r.users[client.Email]; exists {
		return models.ErrUserAlreadyExists
	}
	r.nextUserID++
	client.ID = r.nextUserID
	r.users[client.Email] = client
	for _, note := range notes {
		note.RecipientID = client.ID
		r.nextNoteID++
		note.ID = r.nextNoteID
		copied := *note
		r.notes[note.ID] = &copied
	}
	return nil
}

func (r *fakeRepo) GetUserByEmail(email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepo) GetClientByEmail(email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok || user.Role != models.RoleClient {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepo) ListClients() ([]models.User, error) {
	clients := []models.User{}
	for _, user := range r.users {
		if user.Role == models.RoleClient {
			clients = append(clients, *user)
		}
	}
	return clients, nil
}

func (r *fakeRepo) SaveUser(user *models.User) error {
	if user.ID == 0 {
		r.nextUserID++
		user.ID = r.nextUserID
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeRepo) DeleteUserByEmail(email string) error {
	user, ok := r.users[email]
	if !ok {
		return models.ErrNotFound
	}
	for id, note := range r.notes {
		if note.RecipientID == user.ID {
			delete(r.notes, id)
		}
	}
	for id, report := range r.reports {
		if report.RecipientID == user.ID {
			delete(r.reports, id)
		}
	}
	delete(r.users, email)
	return nil
}

func (r *fakeRepo) SaveNote(note *models.Note) error {
	if note.ID == 0 {
		r.nextNoteID++
		note.ID = r.nextNoteID
	}
	copied := *note
	copied.Recipient = nil
	r.notes[note.ID] = &copied
	return nil
}

func (r *fakeRepo) GetNoteByID(id uint) (*models.Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *note
	copied.Recipient = r.userByID(note.RecipientID)
	return &copied, nil
}

func (r *fakeRepo) FindNotesByRecipientAndType(email string, noteType models.NoteType) ([]models.Note, error) {
	user, ok := r.users[email]
	if !ok {
		return []models.Note{}, nil
	}
	notes := []models.Note{}
	for id := uint(1); id <= r.nextNoteID; id++ {
		note, ok := r.notes[id]
		if ok && note.RecipientID == user.ID && note.NoteType == noteType {
			notes = append(notes, *note)
		}
	}
	return notes, nil
}

func (r *fakeRepo) FindMeetingNoteByRecipientAndID(email string, id uint) (*models.Note, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	note, ok := r.notes[id]
	if !ok || note.RecipientID != user.ID || note.NoteType != models.NoteTypeMeeting {
		return nil, models.ErrNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *fakeRepo) SaveReport(report *models.Report) error {
	if report.ID == 0 {
		r.nextReportID++
		report.ID = r.nextReportID
	}
	copied := *report
	copied.Recipient = nil
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeRepo) GetReportByID(id uint) (*models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *report
	copied.Recipient = r.userByID(report.RecipientID)
	return &copied, nil
}

func (r *fakeRepo) FindReportsByRecipient(email string) ([]models.Report, error) {
	user, ok := r.users[email]
	if !ok {
		return []models.Report{}, nil
	}
	reports := []models.Report{}
	for id := uint(1); id <= r.nextReportID; id++ {
		report, ok := r.reports[id]
		if ok && report.RecipientID == user.ID {
			reports = append(reports, *report)
		}
	}
	return reports, nil
}

func (r *fakeRepo) FindReportByRecipientAndID(email string, id uint) (*models.Report, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	report, ok := r.reports[id]
	if !ok || report.RecipientID != user.ID {
		return nil, models.ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (r *fakeRepo) Close() error { return nil }

func (r *fakeRepo) userByID(id uint) *models.User {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied
		}
	}
	return nil
}

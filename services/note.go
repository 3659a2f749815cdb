package services

import (
	"sort"
	"time"

	"onboarding-service/models"
)

type NoteService struct {
	repo models.Repository
}

func NewNoteService(repo models.Repository) *NoteService {
	return &NoteService{repo: repo}
}

// ListMeetingNotes returns the client's live meeting notes, newest first.
func (s *NoteService) ListMeetingNotes(email string) ([]models.Note, error) {
	notes, err := s.repo.FindNotesByRecipientAndType(email, models.NoteTypeMeeting)
	if err != nil {
		return nil, err
	}
	live := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if !note.Removed() {
			live = append(live, note)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].Date.After(live[j].Date)
	})
	return live, nil
}

func (s *NoteService) GetMeetingNote(email string, id uint) (*models.Note, error) {
	return s.repo.FindMeetingNoteByRecipientAndID(email, id)
}

func (s *NoteService) GetUsefulInfo(email string) (*models.Note, error) {
	return s.singleton(email, models.NoteTypeUsefulInfo)
}

func (s *NoteService) GetContactDetails(email string) (*models.Note, error) {
	return s.singleton(email, models.NoteTypeContactDetails)
}

// singleton fetches the one note of the given type a client owns. It exists
// from registration onwards, so absence is a not-found error.
func (s *NoteService) singleton(email string, noteType models.NoteType) (*models.Note, error) {
	notes, err := s.repo.FindNotesByRecipientAndType(email, noteType)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, models.ErrNotFound
	}
	return &notes[0], nil
}

// SaveMeetingNote updates the note with the given id, or inserts a new one
// when id is zero.
func (s *NoteService) SaveMeetingNote(id uint, header, content, recipientEmail string) error {
	client, err := s.repo.GetClientByEmail(recipientEmail)
	if err != nil {
		return err
	}
	note := &models.Note{
		NoteType:    models.NoteTypeMeeting,
		Header:      header,
		Content:     content,
		Date:        time.Now(),
		RecipientID: client.ID,
	}
	if id != 0 {
		note.ID = id
	}
	return s.repo.SaveNote(note)
}

func (s *NoteService) SaveUsefulInfo(recipientEmail, content string) error {
	return s.replaceSingletonContent(recipientEmail, models.NoteTypeUsefulInfo, content)
}

func (s *NoteService) SaveContactDetails(recipientEmail, content string) error {
	return s.replaceSingletonContent(recipientEmail, models.NoteTypeContactDetails, content)
}

func (s *NoteService) replaceSingletonContent(email string, noteType models.NoteType, content string) error {
	existing, err := s.singleton(email, noteType)
	if err != nil {
		return err
	}
	existing.Content = content
	return s.repo.SaveNote(existing)
}

// DeleteMeetingNote tombstones a meeting note and returns the recipient's
// remaining meeting notes. Singleton note types refuse deletion.
func (s *NoteService) DeleteMeetingNote(id uint) ([]models.Note, error) {
	note, err := s.repo.GetNoteByID(id)
	if err != nil {
		return nil, err
	}
	if note.NoteType != models.NoteTypeMeeting {
		return nil, models.ErrNoteCannotBeDeleted
	}
	now := time.Now()
	note.RemovedAt = &now
	if err := s.repo.SaveNote(note); err != nil {
		return nil, err
	}
	return s.ListMeetingNotes(note.Recipient.Email)
}

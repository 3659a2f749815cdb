package models

import "time"

type NoteType string

const (
	NoteTypeMeeting        NoteType = "MEETING_NOTES"
	NoteTypeUsefulInfo     NoteType = "USEFUL_INFO"
	NoteTypeContactDetails NoteType = "CONTACT_DETAILS"
)

// NoteTypes returns all note types in seeding order. Every client gets one
// default note per type at registration.
func NoteTypes() []NoteType {
	return []NoteType{NoteTypeMeeting, NoteTypeUsefulInfo, NoteTypeContactDetails}
}

var noteDefaults = map[NoteType]struct{ header, content string }{
	NoteTypeMeeting:        {"Greetings!", "Thank you for working with us"},
	NoteTypeUsefulInfo:     {"Useful info", "Useful information has not been added yet..."},
	NoteTypeContactDetails: {"Contact details", "Contact details have not been added yet..."},
}

func (t NoteType) DefaultHeader() string {
	return noteDefaults[t].header
}

func (t NoteType) DefaultContent() string {
	return noteDefaults[t].content
}

type Note struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
	NoteType  NoteType   `gorm:"not null;index" json:"note_type"`
	Header    string     `json:"header"`
	Content   string     `json:"content"`
	Date      time.Time  `json:"date"`
	RemovedAt *time.Time `json:"-"`

	RecipientID uint  `gorm:"not null;index" json:"-"`
	Recipient   *User `gorm:"foreignKey:RecipientID" json:"-"`
}

func NewDefaultNote(noteType NoteType, date time.Time) *Note {
	return &Note{
		NoteType: noteType,
		Header:   noteType.DefaultHeader(),
		Content:  noteType.DefaultContent(),
		Date:     date,
	}
}

// Removed reports whether the note carries a tombstone.
func (n *Note) Removed() bool {
	return n.RemovedAt != nil
}

package models

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository interface {
	CreateClientWithNotes(client *User, notes []*Note) error
	GetUserByEmail(email string) (*User, error)
	GetClientByEmail(email string) (*User, error)
	ListClients() ([]User, error)
	SaveUser(user *User) error
	DeleteUserByEmail(email string) error

	SaveNote(note *Note) error
	GetNoteByID(id uint) (*Note, error)
	FindNotesByRecipientAndType(email string, noteType NoteType) ([]Note, error)
	FindMeetingNoteByRecipientAndID(email string, id uint) (*Note, error)

	SaveReport(report *Report) error
	GetReportByID(id uint) (*Report, error)
	FindReportsByRecipient(email string) ([]Report, error)
	FindReportByRecipientAndID(email string, id uint) (*Report, error)

	Close() error
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository() (*PostgresRepository, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &Note{}, &Report{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// CreateClientWithNotes inserts the client row and its default notes in one
// transaction: either all rows become visible or none.
func (r *PostgresRepository) CreateClientWithNotes(client *User, notes []*Note) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(client).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserAlreadyExists
			}
			return err
		}
		for _, note := range notes {
			note.RecipientID = client.ID
			if err := tx.Create(note).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresRepository) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetClientByEmail(email string) (*User, error) {
	var user User
	err := r.db.Where("role = ? AND email = ?", RoleClient, email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) ListClients() ([]User, error) {
	var clients []User
	if err := r.db.Where("role = ?", RoleClient).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *PostgresRepository) SaveUser(user *User) error {
	return r.db.Save(user).Error
}

// DeleteUserByEmail removes the user together with owned notes and reports.
// This is a hard delete, kept from the legacy client-removal path.
func (r *PostgresRepository) DeleteUserByEmail(email string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("recipient_id = ?", user.ID).Delete(&Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ?", user.ID).Delete(&Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (r *PostgresRepository) SaveNote(note *Note) error {
	return r.db.Save(note).Error
}

func (r *PostgresRepository) GetNoteByID(id uint) (*Note, error) {
	var note Note
	if err := r.db.Preload("Recipient").First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *PostgresRepository) FindNotesByRecipientAndType(email string, noteType NoteType) ([]Note, error) {
	var notes []Note
	err := r.db.
		Joins("JOIN users ON users.id = notes.recipient_id").
		Where("users.email = ? AND notes.note_type = ?", email, noteType).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *PostgresRepository) FindMeetingNoteByRecipientAndID(email string, id uint) (*Note, error) {
	var note Note
	err := r.db.
		Joins("JOIN users ON users.id = notes.recipient_id").
		Where("users.email = ? AND notes.note_type = ? AND notes.id = ?", email, NoteTypeMeeting, id).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *PostgresRepository) SaveReport(report *Report) error {
	return r.db.Save(report).Error
}

func (r *PostgresRepository) GetReportByID(id uint) (*Report, error) {
	var report Report
	if err := r.db.Preload("Recipient").First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *PostgresRepository) FindReportsByRecipient(email string) ([]Report, error) {
	var reports []Report
	err := r.db.
		Joins("JOIN users ON users.id = reports.recipient_id").
		Where("users.email = ?", email).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *PostgresRepository) FindReportByRecipientAndID(email string, id uint) (*Report, error) {
	var report Report
	err := r.db.
		Joins("JOIN users ON users.id = reports.recipient_id").
		Where("users.email = ? AND reports.id = ?", email, id).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Role string

const (
	RoleManager Role = "MANAGER"
	RoleClient  Role = "CLIENT"
)

const (
	// FormAnswersCount is the fixed length of the onboarding form.
	FormAnswersCount = 6
	// OnboardingStagesCount is the fixed length of the stage sequence.
	OnboardingStagesCount = 3
)

// StringList is an ordered list of nullable strings stored as a JSON column.
// Nil entries mark answers that have not been filled in yet.
type StringList []*string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// User holds both roles in one table: the role tag decides which payload
// fields are meaningful. Role is set by the constructors and never changes.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null" json:"role"`

	// manager payload
	Status string `json:"status,omitempty"`

	// client payload
	FullName         string     `json:"full_name,omitempty"`
	FormAnswers      StringList `json:"form_answers,omitempty"`
	OnboardingStages StringList `json:"onboarding_stages,omitempty"`
	ActiveStage      int64      `json:"active_stage,omitempty"`

	Notes   []Note   `gorm:"foreignKey:RecipientID" json:"-"`
	Reports []Report `gorm:"foreignKey:RecipientID" json:"-"`
}

func NewManager(email, passwordHash, status string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleManager,
		Status:       status,
	}
}

// NewClient creates a client at the first onboarding stage with the default
// stage sequence and six empty form-answer slots.
func NewClient(email, passwordHash, fullName string) *User {
	return &User{
		Email:            email,
		PasswordHash:     passwordHash,
		Role:             RoleClient,
		FullName:         fullName,
		FormAnswers:      make(StringList, FormAnswersCount),
		OnboardingStages: DefaultOnboardingStages(),
		ActiveStage:      1,
	}
}

func DefaultOnboardingStages() StringList {
	stages := []string{"Beginner", "Common client", "Partner"}
	list := make(StringList, len(stages))
	for i := range stages {
		list[i] = &stages[i]
	}
	return list
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// IsFormFilled reports whether every answer slot holds a value. A missing or
// partially filled list counts as not filled.
func (u *User) IsFormFilled() bool {
	if len(u.FormAnswers) != FormAnswersCount {
		return false
	}
	for _, answer := range u.FormAnswers {
		if answer == nil {
			return false
		}
	}
	return true
}

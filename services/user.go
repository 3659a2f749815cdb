package services

import (
	"onboarding-service/models"
)

type UserService struct {
	repo models.Repository
}

func NewUserService(repo models.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListClients() ([]models.User, error) {
	return s.repo.ListClients()
}

func (s *UserService) GetClient(email string) (*models.User, error) {
	return s.repo.GetClientByEmail(email)
}

// UpdateClient applies only the non-nil fields. List sizes are validated
// before anything is written, so a bad request leaves the row untouched.
func (s *UserService) UpdateClient(
	email string,
	fullName *string,
	formAnswers models.StringList,
	onboardingStages models.StringList,
	activeStage *int64,
) error {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if !user.IsClient() {
		return models.ErrUserNotClient
	}
	if onboardingStages != nil && len(onboardingStages) != models.OnboardingStagesCount {
		return models.ErrWrongListSize
	}
	if formAnswers != nil && len(formAnswers) != models.FormAnswersCount {
		return models.ErrWrongListSize
	}

	if fullName != nil {
		user.FullName = *fullName
	}
	if formAnswers != nil {
		user.FormAnswers = formAnswers
	}
	if onboardingStages != nil {
		user.OnboardingStages = onboardingStages
	}
	if activeStage != nil {
		user.ActiveStage = *activeStage
	}
	return s.repo.SaveUser(user)
}

func (s *UserService) IsFormFilled(email string) (bool, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return false, err
	}
	if !user.IsClient() {
		return false, models.ErrUserNotClient
	}
	return user.IsFormFilled(), nil
}

// DeleteClient hard-deletes the user and returns the remaining clients.
// Notes and reports use tombstones; this legacy path does not.
func (s *UserService) DeleteClient(email string) ([]models.User, error) {
	if err := s.repo.DeleteUserByEmail(email); err != nil {
		return nil, err
	}
	return s.repo.ListClients()
}

package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"pizzeria/pkg/domain/model"
)

var (
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

type UserService interface {
	Register(name, email, plainTextPassword string, active, admin bool) (*model.User, error)
	Authenticate(email, plainTextPassword string) (*model.User, error)
	Find(userID uuid.UUID) (*model.User, error)
}

func NewUserService(repo model.UserRepository, passManager model.PasswordManager, dispatcher EventDispatcher) UserService {
	return &userService{
		repo:        repo,
		passManager: passManager,
		dispatcher:  dispatcher,
	}
}

type userService struct {
	repo        model.UserRepository
	passManager model.PasswordManager
	dispatcher  EventDispatcher
}

func (s *userService) Register(name, email, plainTextPassword string, active, admin bool) (*model.User, error) {
	if len(plainTextPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, model.ErrEmailTaken
	}

	hashedPassword, err := s.passManager.Hash(plainTextPassword)
	if err != nil {
		return nil, err
	}

	userID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             userID,
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Active:         active,
		Admin:          admin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{
		UserID: userID,
		Email:  email,
		Name:   name,
	})

	return user, nil
}

// Authenticate reports the same failure for an unknown email and a wrong
// password, so callers cannot probe which addresses are registered.
func (s *userService) Authenticate(email, plainTextPassword string) (*model.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.passManager.Check(user.HashedPassword, plainTextPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) Find(userID uuid.UUID) (*model.User, error) {
	return s.repo.Find(userID)
}

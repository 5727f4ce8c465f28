package service

import (
	"time"

	"github.com/google/uuid"

	"pizzeria/pkg/domain/model"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Login(email, plainTextPassword string) (*model.User, TokenPair, error)
	Refresh(userID uuid.UUID) (string, error)
}

func NewAuthService(users UserService, tokens TokenService, accessTTL, refreshTTL time.Duration, dispatcher EventDispatcher) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		dispatcher: dispatcher,
	}
}

type authService struct {
	users      UserService
	tokens     TokenService
	accessTTL  time.Duration
	refreshTTL time.Duration
	dispatcher EventDispatcher
}

func (s *authService) Login(email, plainTextPassword string) (*model.User, TokenPair, error) {
	user, err := s.users.Authenticate(email, plainTextPassword)
	if err != nil {
		return nil, TokenPair{}, err
	}

	accessToken, err := s.tokens.Issue(user.ID, s.accessTTL)
	if err != nil {
		return nil, TokenPair{}, err
	}
	refreshToken, err := s.tokens.Issue(user.ID, s.refreshTTL)
	if err != nil {
		return nil, TokenPair{}, err
	}

	_ = s.dispatcher.Dispatch(model.UserLoggedIn{UserID: user.ID})

	return user, TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh issues a new short-lived access token for an identity already
// proven by a valid prior token.
func (s *authService) Refresh(userID uuid.UUID) (string, error) {
	return s.tokens.Issue(userID, s.accessTTL)
}

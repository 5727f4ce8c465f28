package password

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"pizzeria/pkg/domain/model"
)

func NewBcryptManager() model.PasswordManager {
	return &bcryptManager{cost: bcrypt.DefaultCost}
}

type bcryptManager struct {
	cost int
}

func (m *bcryptManager) Hash(plainTextPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

func (m *bcryptManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, errors.Wrap(err, "check password")
}

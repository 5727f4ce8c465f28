package mysql

import (
	"database/sql"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"pizzeria/pkg/domain/model"
)

const duplicateEntryErrNo = 1062

func NewUserRepository(db *sqlx.DB) model.UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"password_hash"`
	Active         bool      `db:"active"`
	Admin          bool      `db:"admin"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *userRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *userRepository) Create(user *model.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, active, admin, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :active, :admin, :created_at, :updated_at)`

	_, err := r.db.NamedExec(query, toUserRow(user))

	var mysqlErr *driver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryErrNo {
		return model.ErrEmailTaken
	}
	return errors.Wrap(err, "insert user")
}

func (r *userRepository) Find(id uuid.UUID) (*model.User, error) {
	return r.findOne(`SELECT * FROM users WHERE id = ?`, id.String())
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`SELECT * FROM users WHERE email = ?`, email)
}

func (r *userRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var row userRow
	if err := r.db.Get(&row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "select user")
	}
	return fromUserRow(&row)
}

func toUserRow(user *model.User) *userRow {
	return &userRow{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Active:         user.Active,
		Admin:          user.Admin,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func fromUserRow(row *userRow) (*model.User, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse user id")
	}
	return &model.User{
		ID:             id,
		Name:           row.Name,
		Email:          row.Email,
		HashedPassword: row.HashedPassword,
		Active:         row.Active,
		Admin:          row.Admin,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

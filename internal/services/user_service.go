package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/myrecipebox/recipebox-be/internal/auth"
	"github.com/myrecipebox/recipebox-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id int64) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	Register(name, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db     *sql.DB
	hasher *auth.Hasher
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, hasher *auth.Hasher) *UserService {
	return &UserService{db: db, hasher: hasher}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, auth.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash. This is the lookup behind both login and the principal
// resolver.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, auth.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Register validates the password policy, hashes the password and
// creates the account. A duplicate email surfaces as ErrDuplicateEmail
// via the unique constraint, never as an overwrite.
func (s *UserService) Register(name, email, password string) (models.User, error) {
	if _, err := auth.ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO users(name, email, password_hash) VALUES(?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(name, email, hashedPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, auth.ErrDuplicateEmail
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, auth.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, auth.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

package users

import (
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{repository: r}
}

var userColumns = []interface{}{
	"id", "username", "fullname", "role", "active", "created_at",
}

func (r *UserRepository) GetUsers() ([]models.User, error) {
	query := r.repository.Builder.
		From("users").
		Select(userColumns...).
		Order(goqu.I("username").Asc())

	var users []models.User
	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetUser(id int) (*models.User, error) {
	query := r.repository.Builder.
		From("users").
		Select(userColumns...).
		Where(goqu.Ex{"id": id})

	var user models.User
	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

func (r *UserRepository) PersistUser(username, passwordHash, fullname, role string) error {
	query := r.repository.Builder.Insert("users").
		Rows(goqu.Record{
			"username":      username,
			"password_hash": passwordHash,
			"fullname":      fullname,
			"role":          role,
			"active":        true,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return custom_error.WrapDriverError("Duplicate username", err)
	}

	return nil
}

func (r *UserRepository) UpdateUser(userID int, changes *models.UserChanges) error {
	record := goqu.Record{}
	if changes.Fullname != nil {
		record["fullname"] = *changes.Fullname
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}
	if changes.Active != nil {
		record["active"] = *changes.Active
	}

	result, err := r.repository.Builder.Update("users").
		Set(record).
		Where(goqu.Ex{"id": userID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

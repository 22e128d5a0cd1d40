package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
)

const (
	msgUserNotFound     = "User not found"
	msgEmployeeNotFound = "Employee not found"
)

// DirectoryEntry is the public view of a user used by assignment pickers.
type DirectoryEntry struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     types.Role `json:"role"`
	FullName string     `json:"full_name"`
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. Uniqueness of username and email is left to the
// table constraints so concurrent registrations cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return translate(err, msgUserNotFound, "Error creating user")
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translate(err, msgUserNotFound, "Error fetching user")
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err, msgUserNotFound, "Error fetching user")
	}
	return &user, nil
}

// Directory lists every user ordered by full name.
func (r *UserRepository) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	entries := make([]DirectoryEntry, 0)
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, username, email, role, full_name").
		Order("full_name ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, apperr.Internal("Error fetching users", err)
	}
	return entries, nil
}

func (r *UserRepository) ListEmployees(ctx context.Context) ([]models.User, error) {
	employees := make([]models.User, 0)
	err := r.db.WithContext(ctx).
		Where("role = ?", types.RoleEmployee).
		Order("full_name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, apperr.Internal("Error fetching employees", err)
	}
	return employees, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, patch *models.ProfilePatch) error {
	changes := patch.Changes()
	if err := requireChanges(changes); err != nil {
		return err
	}

	return r.updateExisting(ctx, id, changes, "Error updating profile")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.updateExisting(ctx, id, map[string]any{"password": hash}, "Error updating password")
}

// updateExisting checks the row exists before writing, since some drivers
// report zero affected rows when the new values equal the stored ones.
func (r *UserRepository) updateExisting(ctx context.Context, id uint, changes map[string]any, internal string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").Where("id = ?", id).First(&user).Error; err != nil {
			return translate(err, msgUserNotFound, internal)
		}

		err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(changes).Error
		return translate(err, msgUserNotFound, internal)
	})
}

// UpdateEmployee applies the patch to a user whose role is Employee. Admin
// rows are reported as not found.
func (r *UserRepository) UpdateEmployee(ctx context.Context, id uint, patch *models.EmployeePatch) error {
	changes := patch.Changes()
	if err := requireChanges(changes); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.User
		err := tx.Where("id = ? AND role = ?", id, types.RoleEmployee).First(&employee).Error
		if err != nil {
			return translate(err, msgEmployeeNotFound, "Error updating employee")
		}

		err = tx.Model(&models.User{}).Where("id = ?", employee.ID).Updates(changes).Error
		return translate(err, msgEmployeeNotFound, "Error updating employee")
	})
}

func (r *UserRepository) DeleteEmployee(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND role = ?", id, types.RoleEmployee).Delete(&models.User{})
	if result.Error != nil {
		return apperr.Internal("Error deleting employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgEmployeeNotFound)
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, apperr.Internal("Error counting users", err)
	}
	return count, nil
}

package db

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/types"
)

//go:embed seed.yaml
var seedYAML []byte

type seedUser struct {
	Username string     `yaml:"username"`
	Email    string     `yaml:"email"`
	Password string     `yaml:"password"`
	Role     types.Role `yaml:"role"`
	FullName string     `yaml:"full_name"`
	Phone    *string    `yaml:"phone"`
}

type seedProject struct {
	Key         string              `yaml:"key"`
	Name        string              `yaml:"name"`
	Description *string             `yaml:"description"`
	StartDate   string              `yaml:"start_date"`
	EndDate     string              `yaml:"end_date"`
	Status      types.ProjectStatus `yaml:"status"`
	CreatedBy   string              `yaml:"created_by"`
}

type seedTask struct {
	Project     string             `yaml:"project"`
	Title       string             `yaml:"title"`
	Description *string            `yaml:"description"`
	DueDate     string             `yaml:"due_date"`
	AssignedTo  string             `yaml:"assigned_to"`
	Status      types.TaskStatus   `yaml:"status"`
	Priority    types.TaskPriority `yaml:"priority"`
}

type seedResource struct {
	Name        string               `yaml:"name"`
	Type        types.ResourceType   `yaml:"type"`
	Quantity    *float64             `yaml:"quantity"`
	Unit        *string              `yaml:"unit"`
	Status      types.ResourceStatus `yaml:"status"`
	Project     string               `yaml:"project"`
	Description *string              `yaml:"description"`
}

// Fixtures is the sample data set loaded by Seed. Rows reference each other
// by username and project key.
type Fixtures struct {
	Users     []seedUser     `yaml:"users"`
	Projects  []seedProject  `yaml:"projects"`
	Tasks     []seedTask     `yaml:"tasks"`
	Resources []seedResource `yaml:"resources"`
}

func LoadFixtures(data []byte) (*Fixtures, error) {
	var fixtures Fixtures

	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse seed fixtures: %w", err)
	}

	return &fixtures, nil
}

// Seed loads the default accounts and sample projects when the users table
// is empty. It reports whether anything was inserted.
func Seed(ctx context.Context, database *gorm.DB, logger *slog.Logger) (bool, error) {
	fixtures, err := LoadFixtures(seedYAML)

	if err != nil {
		return false, err
	}

	return SeedFixtures(ctx, database, fixtures, logger)
}

func SeedFixtures(ctx context.Context, database *gorm.DB, fixtures *Fixtures, logger *slog.Logger) (bool, error) {
	var count int64

	if err := database.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}

	if count > 0 {
		logger.Info("seed skipped, users already exist", "users", count)
		return false, nil
	}

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make(map[string]uint, len(fixtures.Users))

		for _, u := range fixtures.Users {
			hash, err := auth.HashPassword(u.Password)

			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Username, err)
			}

			user := models.User{
				Username:     u.Username,
				Email:        u.Email,
				PasswordHash: hash,
				Role:         u.Role,
				FullName:     u.FullName,
				Phone:        u.Phone,
			}

			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create user %s: %w", u.Username, err)
			}

			users[u.Username] = user.ID
		}

		projects := make(map[string]uint, len(fixtures.Projects))

		for _, p := range fixtures.Projects {
			project := models.Project{
				Name:        p.Name,
				Description: p.Description,
				StartDate:   p.StartDate,
				EndDate:     p.EndDate,
				Status:      p.Status,
				CreatedBy:   lookup(users, p.CreatedBy),
			}

			if err := tx.Create(&project).Error; err != nil {
				return fmt.Errorf("create project %s: %w", p.Name, err)
			}

			projects[p.Key] = project.ID
		}

		for _, t := range fixtures.Tasks {
			projectID := lookup(projects, t.Project)

			if projectID == nil {
				return fmt.Errorf("task %s references unknown project %q", t.Title, t.Project)
			}

			task := models.Task{
				ProjectID:   *projectID,
				Title:       t.Title,
				Description: t.Description,
				DueDate:     t.DueDate,
				AssignedTo:  lookup(users, t.AssignedTo),
				Status:      t.Status,
				Priority:    t.Priority,
			}

			if err := tx.Omit("Project").Create(&task).Error; err != nil {
				return fmt.Errorf("create task %s: %w", t.Title, err)
			}
		}

		for _, r := range fixtures.Resources {
			resource := models.Resource{
				Name:        r.Name,
				Type:        r.Type,
				Quantity:    r.Quantity,
				Unit:        r.Unit,
				Status:      r.Status,
				ProjectID:   lookup(projects, r.Project),
				Description: r.Description,
			}

			if err := tx.Omit("Project").Create(&resource).Error; err != nil {
				return fmt.Errorf("create resource %s: %w", r.Name, err)
			}
		}

		return nil
	})

	if err != nil {
		return false, err
	}

	logger.Info("seed data inserted",
		"users", len(fixtures.Users),
		"projects", len(fixtures.Projects),
		"tasks", len(fixtures.Tasks),
		"resources", len(fixtures.Resources),
	)

	return true, nil
}

func lookup(ids map[string]uint, key string) *uint {
	if key == "" {
		return nil
	}

	id, ok := ids[key]

	if !ok {
		return nil
	}

	return &id
}

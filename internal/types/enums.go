package types

import (
	"database/sql/driver"
	"fmt"
)

// Enum is implemented by every closed string type stored in the database.
// The validator's "enum" tag and the persistence layer both go through it.
type Enum interface {
	Valid() bool
	Values() []string
}

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

func (Role) Values() []string { return []string{string(RoleAdmin), string(RoleEmployee)} }

func (r Role) Value() (driver.Value, error) { return enumValue("role", r, r.Valid()) }

func (r *Role) Scan(src any) error { return scanEnum(src, (*string)(r)) }

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

func (ProjectStatus) Values() []string {
	return []string{
		string(ProjectPlanning),
		string(ProjectInProgress),
		string(ProjectOnHold),
		string(ProjectCompleted),
		string(ProjectCancelled),
	}
}

func (s ProjectStatus) Value() (driver.Value, error) { return enumValue("project status", s, s.Valid()) }

func (s *ProjectStatus) Scan(src any) error { return scanEnum(src, (*string)(s)) }

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskBlocked    TaskStatus = "Blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskBlocked:
		return true
	}
	return false
}

func (TaskStatus) Values() []string {
	return []string{string(TaskPending), string(TaskInProgress), string(TaskCompleted), string(TaskBlocked)}
}

func (s TaskStatus) Value() (driver.Value, error) { return enumValue("task status", s, s.Valid()) }

func (s *TaskStatus) Scan(src any) error { return scanEnum(src, (*string)(s)) }

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func (TaskPriority) Values() []string {
	return []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityCritical)}
}

func (p TaskPriority) Value() (driver.Value, error) { return enumValue("task priority", p, p.Valid()) }

func (p *TaskPriority) Scan(src any) error { return scanEnum(src, (*string)(p)) }

type ResourceType string

const (
	ResourceMaterial  ResourceType = "Material"
	ResourceMachinery ResourceType = "Machinery"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceMaterial, ResourceMachinery:
		return true
	}
	return false
}

func (ResourceType) Values() []string {
	return []string{string(ResourceMaterial), string(ResourceMachinery)}
}

func (t ResourceType) Value() (driver.Value, error) { return enumValue("resource type", t, t.Valid()) }

func (t *ResourceType) Scan(src any) error { return scanEnum(src, (*string)(t)) }

type ResourceStatus string

const (
	ResourceAvailable        ResourceStatus = "Available"
	ResourceInUse            ResourceStatus = "In Use"
	ResourceUnderMaintenance ResourceStatus = "Under Maintenance"
	ResourceUnavailable      ResourceStatus = "Unavailable"
)

func (s ResourceStatus) Valid() bool {
	switch s {
	case ResourceAvailable, ResourceInUse, ResourceUnderMaintenance, ResourceUnavailable:
		return true
	}
	return false
}

func (ResourceStatus) Values() []string {
	return []string{
		string(ResourceAvailable),
		string(ResourceInUse),
		string(ResourceUnderMaintenance),
		string(ResourceUnavailable),
	}
}

func (s ResourceStatus) Value() (driver.Value, error) { return enumValue("resource status", s, s.Valid()) }

func (s *ResourceStatus) Scan(src any) error { return scanEnum(src, (*string)(s)) }

func enumValue[T ~string](name string, v T, ok bool) (driver.Value, error) {
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", name, string(v))
	}
	return string(v), nil
}

func scanEnum(src any, dst *string) error {
	switch v := src.(type) {
	case nil:
		*dst = ""
	case string:
		*dst = v
	case []byte:
		*dst = string(v)
	default:
		return fmt.Errorf("cannot scan %T into enum", src)
	}
	return nil
}

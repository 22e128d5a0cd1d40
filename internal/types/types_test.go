package types_test

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/foreman-dev/foreman/internal/types"
)

func TestEnumValid(t *testing.T) {
	tests := []struct {
		name  string
		value types.Enum
		valid bool
	}{
		{name: "admin role", value: types.RoleAdmin, valid: true},
		{name: "lowercase role", value: types.Role("admin"), valid: false},
		{name: "project in progress", value: types.ProjectInProgress, valid: true},
		{name: "project unknown", value: types.ProjectStatus("Archived"), valid: false},
		{name: "task blocked", value: types.TaskBlocked, valid: true},
		{name: "task empty", value: types.TaskStatus(""), valid: false},
		{name: "priority critical", value: types.PriorityCritical, valid: true},
		{name: "priority urgent", value: types.TaskPriority("Urgent"), valid: false},
		{name: "machinery", value: types.ResourceMachinery, valid: true},
		{name: "tooling", value: types.ResourceType("Tooling"), valid: false},
		{name: "under maintenance", value: types.ResourceUnderMaintenance, valid: true},
		{name: "broken", value: types.ResourceStatus("Broken"), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(tt.value.Valid(), qt.Equals, tt.valid)
		})
	}
}

func TestEnumValueRejectsUnknown(t *testing.T) {
	c := qt.New(t)

	v, err := types.ProjectCompleted.Value()
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, "Completed")

	_, err = types.ProjectStatus("Done").Value()
	c.Assert(err, qt.ErrorMatches, `invalid project status "Done"`)
}

func TestEnumScan(t *testing.T) {
	c := qt.New(t)

	var s types.TaskStatus
	c.Assert(s.Scan([]byte("Blocked")), qt.IsNil)
	c.Assert(s, qt.Equals, types.TaskBlocked)

	var r types.Role
	c.Assert(r.Scan("Employee"), qt.IsNil)
	c.Assert(r, qt.Equals, types.RoleEmployee)

	c.Assert(r.Scan(42), qt.IsNotNil)
}

func TestEnumValues(t *testing.T) {
	c := qt.New(t)

	c.Assert(types.ProjectStatus("").Values(), qt.DeepEquals,
		[]string{"Planning", "In Progress", "On Hold", "Completed", "Cancelled"})
	c.Assert(types.ResourceStatus("").Values(), qt.HasLen, 4)
}

func TestNullableUnmarshal(t *testing.T) {
	type patch struct {
		AssignedTo types.Nullable[uint]    `json:"assigned_to"`
		Quantity   types.Nullable[float64] `json:"quantity"`
		Unit       types.Nullable[string]  `json:"unit"`
	}

	tests := []struct {
		name     string
		input    string
		check    func(c *qt.C, p patch)
		errMatch string
	}{
		{
			name:  "absent keys stay unset",
			input: `{}`,
			check: func(c *qt.C, p patch) {
				c.Assert(p.AssignedTo.Set, qt.IsFalse)
				c.Assert(p.Quantity.Set, qt.IsFalse)
				c.Assert(p.Unit.Set, qt.IsFalse)
			},
		},
		{
			name:  "explicit null is set without value",
			input: `{"assigned_to": null, "unit": null}`,
			check: func(c *qt.C, p patch) {
				c.Assert(p.AssignedTo.Set, qt.IsTrue)
				c.Assert(p.AssignedTo.Value, qt.IsNil)
				c.Assert(p.Unit.Set, qt.IsTrue)
				c.Assert(p.Unit.Value, qt.IsNil)
			},
		},
		{
			name:  "numbers",
			input: `{"assigned_to": 3, "quantity": 2.5}`,
			check: func(c *qt.C, p patch) {
				c.Assert(*p.AssignedTo.Value, qt.Equals, uint(3))
				c.Assert(*p.Quantity.Value, qt.Equals, 2.5)
			},
		},
		{
			name:  "quoted numbers from form inputs",
			input: `{"assigned_to": "7", "quantity": "12.75"}`,
			check: func(c *qt.C, p patch) {
				c.Assert(*p.AssignedTo.Value, qt.Equals, uint(7))
				c.Assert(*p.Quantity.Value, qt.Equals, 12.75)
			},
		},
		{
			name:  "empty strings on numeric fields are null",
			input: `{"assigned_to": "", "quantity": ""}`,
			check: func(c *qt.C, p patch) {
				c.Assert(p.AssignedTo.Set, qt.IsTrue)
				c.Assert(p.AssignedTo.Value, qt.IsNil)
				c.Assert(p.Quantity.Value, qt.IsNil)
			},
		},
		{
			name:  "empty string stays a string",
			input: `{"unit": ""}`,
			check: func(c *qt.C, p patch) {
				c.Assert(*p.Unit.Value, qt.Equals, "")
			},
		},
		{
			name:     "garbage id",
			input:    `{"assigned_to": "seven"}`,
			errMatch: ".*cannot unmarshal.*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			var p patch
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.errMatch != "" {
				c.Assert(err, qt.ErrorMatches, tt.errMatch)
				return
			}
			c.Assert(err, qt.IsNil)
			tt.check(c, p)
		})
	}
}

func TestNullableMarshal(t *testing.T) {
	c := qt.New(t)

	out, err := json.Marshal(struct {
		A types.Nullable[uint] `json:"a"`
		B types.Nullable[uint] `json:"b"`
	}{A: types.Some[uint](4), B: types.Null[uint]()})
	c.Assert(err, qt.IsNil)
	c.Assert(string(out), qt.Equals, `{"a":4,"b":null}`)
}

package config

import (
	"fmt"
	"strings"
)

// Page actions checked by the route guard
const (
	ActionView   = "view"
	ActionManage = "manage"
)

// AccessRule grants a role an action on a page route. Path uses keyMatch2
// syntax (":id" segments, trailing "*").
type AccessRule struct {
	Role        string `yaml:"role"`
	Path        string `yaml:"path"`
	Action      string `yaml:"action"`
	Description string `yaml:"description,omitempty"`
}

// Check rejects rules the guard could never match
func (r AccessRule) Check() error {
	switch r.Role {
	case "none", "admin", "executive", "student":
	default:
		return fmt.Errorf("unsupported role %q", r.Role)
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("path %q must start with /", r.Path)
	}
	if r.Action == "" {
		return fmt.Errorf("rule for %s has no action", r.Path)
	}
	for _, a := range strings.Split(r.Action, "|") {
		if a != ActionView && a != ActionManage {
			return fmt.Errorf("unsupported action %q", a)
		}
	}
	return nil
}

// DefaultAccessRules is used when the config file declares none. Every role
// also inherits the "none" rules through the guard's role hierarchy.
func DefaultAccessRules() []AccessRule {
	return []AccessRule{
		{Role: "none", Path: "/", Action: ActionView, Description: "home"},
		{Role: "none", Path: "/login", Action: ActionView},
		{Role: "none", Path: "/executive/login", Action: ActionView},
		{Role: "none", Path: "/courses", Action: ActionView},
		{Role: "none", Path: "/courses/:id", Action: ActionView},
		{Role: "none", Path: "/tutors/apply", Action: ActionView + "|" + ActionManage, Description: "tutor intake"},

		{Role: "student", Path: "/student/*", Action: ActionView + "|" + ActionManage, Description: "profile and bookings"},

		{Role: "executive", Path: "/admin", Action: ActionView},
		{Role: "executive", Path: "/admin/staffs", Action: ActionView + "|" + ActionManage},
		{Role: "executive", Path: "/admin/tutors", Action: ActionView + "|" + ActionManage},
		{Role: "executive", Path: "/admin/categories", Action: ActionView},
		{Role: "executive", Path: "/admin/categories/*", Action: ActionView},

		{Role: "admin", Path: "/admin", Action: ActionView},
		{Role: "admin", Path: "/admin/*", Action: ActionView + "|" + ActionManage, Description: "back office"},
	}
}

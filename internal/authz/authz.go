package authz

import "github.com/google/uuid"

type Role string

const (
	RoleParent   Role = "PARENT"
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleOther    Role = "OTHER"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleParent, RoleAdmin, RoleEmployee:
		return Role(s)
	default:
		return RoleOther
	}
}

type Resource string

const (
	ResourceCompany    Resource = "company"
	ResourceDepartment Resource = "department"
	ResourceEmployee   Resource = "employee"
	ResourceAdminUser  Resource = "admin_user"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the authenticated identity authorization decisions are made
// for. CompanyID is the membership reference carried by ADMIN and
// EMPLOYEE users; OwnedCompanyID is resolved from company ownership and
// is only ever set for PARENT users.
type Actor struct {
	UserID         uuid.UUID
	Role           Role
	CompanyID      *uuid.UUID
	OwnedCompanyID *uuid.UUID
}

// Scope is the predicate over resource rows the actor may act on. Repos
// must apply it inside the same query as any id lookup. When SelfUserID
// is set the actor may only reach rows backed by that user.
type Scope struct {
	CompanyID  uuid.UUID
	SelfUserID *uuid.UUID
}

package authz

import "go-bms/internal/shared/apperror"

var (
	// ErrDenied: authenticated but the role does not permit the action.
	ErrDenied = apperror.ErrForbidden

	// ErrNoCompanyLinked: the role permits the action but the actor has
	// no resolvable company. Reported distinctly so operators can spot
	// broken accounts instead of chasing phantom permission bugs.
	ErrNoCompanyLinked = apperror.ErrNoCompanyLinked
)

// permissions is the single source of truth for role capabilities.
// Keeping it as one table instead of per-endpoint conditionals stops
// the CRUD paths from drifting apart.
var permissions = map[Role]map[Resource]map[Action]bool{
	RoleParent: {
		ResourceCompany:    {ActionRead: true, ActionUpdate: true},
		ResourceDepartment: {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionDelete: true},
		ResourceEmployee:   {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionDelete: true},
		ResourceAdminUser:  {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionDelete: true},
	},
	RoleAdmin: {
		ResourceCompany:    {ActionRead: true},
		ResourceDepartment: {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionDelete: true},
		ResourceEmployee:   {ActionRead: true, ActionCreate: true, ActionUpdate: true, ActionDelete: true},
	},
	RoleEmployee: {
		ResourceEmployee: {ActionRead: true},
	},
}

// Resolve decides whether the actor may perform action on resource and,
// if so, returns the scope predicate restricting which rows it reaches.
//
// Role insufficiency returns ErrDenied. A permitted role with no
// resolvable company returns ErrNoCompanyLinked. Repositories apply the
// returned scope in the lookup itself, so a cross-tenant id resolves to
// NotFound, never Forbidden.
func Resolve(actor Actor, resource Resource, action Action) (Scope, error) {
	if !permissions[actor.Role][resource][action] {
		return Scope{}, ErrDenied
	}

	companyID := actor.CompanyID
	if actor.Role == RoleParent {
		companyID = actor.OwnedCompanyID
	}
	if companyID == nil {
		return Scope{}, ErrNoCompanyLinked
	}

	scope := Scope{CompanyID: *companyID}
	if actor.Role == RoleEmployee && resource == ResourceEmployee {
		self := actor.UserID
		scope.SelfUserID = &self
	}
	return scope, nil
}

package employee

type CreateEmployeeRequest struct {
	CompanyID    string `json:"company_id" binding:"required,uuid"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest lists the only fields that stay mutable after
// creation. Identity, company, joining date and employee number are
// fixed; anything else in the payload is dropped at the boundary.
type UpdateEmployeeRequest struct {
	Role         string  `json:"role"`
	IsActive     *bool   `json:"is_active"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type EmployeeUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	CompanyID      string `json:"company_id"`
	DepartmentID   string `json:"department_id,omitempty"`
	Role           string `json:"role"`
	EmployeeNumber string `json:"employee_number"`
	JoiningDate    string `json:"joining_date"`
	IsActive       bool   `json:"is_active"`

	User       *EmployeeUserResponse       `json:"user,omitempty"`
	Department *EmployeeDepartmentResponse `json:"department,omitempty"`
}

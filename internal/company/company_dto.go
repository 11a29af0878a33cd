package company

type CompanyResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Industry           string `json:"industry"`
	Website            string `json:"website,omitempty"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
	Country            string `json:"country,omitempty"`
	Phone              string `json:"phone,omitempty"`
	IsActive           bool   `json:"is_active"`

	DepartmentCount int64 `json:"department_count"`
	EmployeeCount   int64 `json:"employee_count"`
	AdminCount      int64 `json:"admin_count"`
}

type UpdateCompanyRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Industry           string `json:"industry"`
	Website            string `json:"website"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	PostalCode         string `json:"postal_code"`
	Country            string `json:"country"`
	Phone              string `json:"phone"`
	IsActive           *bool  `json:"is_active"`
}

package model

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

//User is the profile returned by login and OTP verification
type User struct {
	ID             int64    `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Role           Role     `json:"role"`
	Gender         string   `json:"gender,omitempty"`
	DepartmentID   *int64   `json:"departmentId,omitempty"`
	DepartmentName string   `json:"departmentName,omitempty"`
	HireDate       *Date    `json:"hireDate,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
	DateOfBirth    *Date    `json:"dateOfBirth,omitempty"`
	Token          string   `json:"token,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

//RegistrationRequest is the payload of a self registration. Employee only fields stay nil for admins.
type RegistrationRequest struct {
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Role             Role     `json:"role"`
	Gender           string   `json:"gender,omitempty"`
	DateOfBirth      *Date    `json:"dateOfBirth,omitempty"`
	HireDate         *Date    `json:"hireDate,omitempty"`
	Salary           *float64 `json:"salary,omitempty"`
	DepartmentID     *int64   `json:"departmentId,omitempty"`
	ManagedByAdminID *int64   `json:"managedByAdminId,omitempty"`
}

type RegistrationResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type AdminSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type Department struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Employee struct {
	ID               int64    `json:"id,omitempty"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Password         string   `json:"password,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	ManagedByAdminID *int64   `json:"managedByAdminId,omitempty"`
	DateOfBirth      *Date    `json:"dateOfBirth,omitempty"`
	HireDate         *Date    `json:"hireDate,omitempty"`
	Salary           *float64 `json:"salary,omitempty"`
	Role             Role     `json:"role"`
	DepartmentID     *int64   `json:"departmentId,omitempty"`
	DepartmentName   string   `json:"departmentName,omitempty"`
}

//FullName joins first and last name
func (e Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

type LeaveRequest struct {
	ID                int64       `json:"id,omitempty"`
	EmployeeID        int64       `json:"employeeId,omitempty"`
	EmployeeName      string      `json:"employeeName,omitempty"`
	EmployeeEmail     string      `json:"employeeEmail,omitempty"`
	StartDate         *Date       `json:"startDate,omitempty"`
	EndDate           *Date       `json:"endDate,omitempty"`
	Reason            string      `json:"reason,omitempty"`
	Status            LeaveStatus `json:"status,omitempty"`
	AdminRemarks      string      `json:"adminRemarks,omitempty"`
	ActionByAdminName string      `json:"actionByAdminName,omitempty"`
	CreatedAt         *Date       `json:"createdAt,omitempty"`
	UpdatedAt         *Date       `json:"updatedAt,omitempty"`
}

type LeaveAction struct {
	NewStatus    LeaveStatus `json:"newStatus"`
	AdminRemarks string      `json:"adminRemarks"`
}

type AverageSalary struct {
	DepartmentName string  `json:"departmentName"`
	AverageSalary  float64 `json:"averageSalary"`
}

type DashboardSummary struct {
	TotalEmployees             int64            `json:"totalEmployees"`
	TotalDepartments           int64            `json:"totalDepartments"`
	AverageEmployeeAge         float64          `json:"averageEmployeeAge"`
	AverageSalaryPerDepartment []AverageSalary  `json:"averageSalaryPerDepartment"`
	EmployeeCountByRole        map[string]int64 `json:"employeeCountByRole"`
	EmployeeCountByDepartment  map[string]int64 `json:"employeeCountByDepartment"`
	EmployeeCountByGender      map[string]int64 `json:"employeeCountByGender"`
	EmployeeCountByAgeGroup    map[string]int64 `json:"employeeCountByAgeGroup"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// Package employee implements the admin employee management screen.
package employee

import (
	"context"
	"net/http"
	"time"

	"github.com/elimu-lms/elimu/core"
	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/core/session"
	"github.com/elimu-lms/elimu/services/api"
	"github.com/elimu-lms/elimu/storage/fallback"
	"github.com/elimu-lms/elimu/storage/kv"
)

const employeesKey = "lms_employees"

// Employee is a managed account as the admin screen sees it. It shares
// the backend's user shape; the role is always "employee".
type Employee struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"user_name,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (e Employee) EntityID() string          { return e.ID }
func (e Employee) WithID(id string) Employee { e.ID = id; return e }

func (e Employee) FullName() string {
	return core.CleanString(e.FirstName + " " + e.LastName)
}

// Form carries an employee create or update. The password is only sent
// on create; registration forces the employee role regardless of input.
type Form struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role        string `json:"role"`
}

func (f *Form) Validate() error {
	f.FirstName = core.CleanString(f.FirstName)
	f.LastName = core.CleanString(f.LastName)
	f.Email = core.CleanString(f.Email, true)
	f.Role = session.RoleEmployee
	return core.Validate.Struct(f)
}

// SeedEmployees is the dataset a first unauthenticated run starts from.
func SeedEmployees() []Employee {
	return []Employee{
		{ID: "1", FirstName: "Amani", LastName: "Juma", Email: "amani.juma@acme.io", Role: session.RoleEmployee, IsActive: true, CreatedAt: "2024-01-05"},
		{ID: "2", FirstName: "Neema", LastName: "Baraka", Email: "neema.baraka@acme.io", Role: session.RoleEmployee, IsActive: true, CreatedAt: "2024-01-06"},
		{ID: "3", FirstName: "David", LastName: "Otieno", Email: "david.otieno@acme.io", Role: session.RoleEmployee, IsActive: false, CreatedAt: "2024-01-07"},
	}
}

type Screen struct {
	*editing.Controller[Employee]

	client *api.Client
	eps    api.Endpoints
	token  string
}

// Mount chooses the screen's data source from token presence and loads
// the employee list. Remote creates go through the registration
// endpoint, not the admin collection.
func Mount(ctx context.Context, client *api.Client, eps api.Endpoints, kvStore *kv.Store, token string) (*Screen, error) {
	remote := editing.NewRemote[Employee](client, token, editing.Paths{
		List:   eps.AdminEmployees(),
		Create: eps.AuthRegister(),
		Item:   eps.AdminEmployee,
	}, []string{"employees", "users"}, []string{"employee", "user"})
	local := editing.NewLocal(fallback.NewList(kvStore, employeesKey, SeedEmployees()))

	ctrl, err := editing.Mount[Employee](ctx, token, remote, local)
	if err != nil {
		return nil, err
	}
	return &Screen{Controller: ctrl, client: client, eps: eps, token: token}, nil
}

func (s *Screen) CreateEmployee(ctx context.Context, form Form) (Employee, error) {
	if err := form.Validate(); err != nil {
		return Employee{}, err
	}
	if s.SourceName() == editing.SourceRemote {
		opts := api.Options{Method: http.MethodPost, Body: form, Token: s.token}
		if _, err := s.client.Request(ctx, s.eps.AuthRegister(), opts); err != nil {
			return Employee{}, err
		}
		// registration responses don't echo a usable record
		if err := s.Refresh(ctx); err != nil {
			return Employee{}, err
		}
		for _, e := range s.Items() {
			if e.Email == form.Email {
				return e, nil
			}
		}
		return Employee{}, nil
	}
	return s.Create(ctx, Employee{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Gender:      form.Gender,
		Role:        session.RoleEmployee,
		IsActive:    true,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Screen) UpdateEmployee(ctx context.Context, id string, form Form) (Employee, error) {
	if err := form.Validate(); err != nil {
		return Employee{}, err
	}
	emp := Employee{Role: session.RoleEmployee, IsActive: true}
	for _, existing := range s.Items() {
		if existing.ID == id {
			emp = existing
			break
		}
	}
	emp.FirstName = form.FirstName
	emp.LastName = form.LastName
	emp.Email = form.Email
	emp.PhoneNumber = form.PhoneNumber
	emp.Gender = form.Gender
	return s.Update(ctx, id, emp)
}

// Activate re-enables the account. Remote mounts go through the admin
// activate endpoint and patch the visible item.
func (s *Screen) Activate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true, s.eps.AdminEmployeeActivate(id))
}

// Deactivate disables the account; the screen never deletes employees.
func (s *Screen) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false, s.eps.AdminEmployeeDeactivate(id))
}

func (s *Screen) setActive(ctx context.Context, id string, active bool, url string) error {
	if s.SourceName() == editing.SourceRemote {
		opts := api.Options{Method: http.MethodPut, Token: s.token}
		if _, err := s.client.Request(ctx, url, opts); err != nil {
			return err
		}
		s.Patch(id, func(e Employee) Employee { e.IsActive = active; return e })
		return nil
	}
	for _, existing := range s.Items() {
		if existing.ID == id {
			existing.IsActive = active
			_, err := s.Update(ctx, id, existing)
			return err
		}
	}
	return editing.ErrNotFound
}

package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-empdir/internal/employee/errors"
	"go-empdir/internal/events"
	"go-empdir/internal/identity"
	"go-empdir/internal/messaging/kafka"
	"go-empdir/internal/scope"
	"go-empdir/internal/shared/apperror"
	"go-empdir/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p scope.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, p scope.Principal) ([]EmployeeResponse, error)
	GetAllByDepartment(ctx context.Context, p scope.Principal, departmentID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, p scope.Principal, id string) (EmployeeResponse, error)
	Update(ctx context.Context, p scope.Principal, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, p scope.Principal, id string) error

	GetProfile(ctx context.Context, p scope.Principal) (EmployeeResponse, error)
	UpdateProfile(ctx context.Context, p scope.Principal, req UpdateProfileRequest) (EmployeeResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  identity.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users identity.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, users: users, outbox: outbox, logger: l}
}

// resolveCompany decides which company a new employee belongs to.
// Managers may only hire into their own company; naming another one is
// rejected, not redirected. Admins must name the company explicitly.
func (s *service) resolveCompany(p scope.Principal, requested string) (string, error) {
	if p.Role == scope.RoleManager {
		if requested != "" && requested != p.CompanyID {
			return "", apperror.NewValidation(map[string]string{
				"company": "You can only create employees for your own company.",
			})
		}
		requested = p.CompanyID
	}
	if requested == "" {
		return "", apperror.RequiredField("company")
	}
	return requested, nil
}

// validateDepartment checks that the department exists within the
// caller's visibility and belongs to the target company. The mismatch
// message names both sides so the caller can see what went wrong.
func (s *service) validateDepartment(
	ctx context.Context,
	p scope.Principal,
	departmentID string,
	companyID string,
) (*DepartmentRef, error) {
	policy := scope.ForRole(p.Role)

	dept, err := s.repo.GetDepartment(ctx, departmentID, policy.Departments(p))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewValidation(map[string]string{
				"department": "Department not found.",
			})
		}
		return nil, mapRepositoryError(err)
	}

	if dept.CompanyID.String() != companyID {
		company, err := s.repo.GetCompany(ctx, companyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NewValidation(map[string]string{
					"company": "Company not found.",
				})
			}
			return nil, mapRepositoryError(err)
		}
		return nil, apperror.NewValidation(map[string]string{
			"department": fmt.Sprintf(
				"Department %s does not belong to company %s.",
				dept.Name, company.Name,
			),
		})
	}

	return dept, nil
}

func (s *service) checkEmailFree(ctx context.Context, email string, excludeUserID uuid.UUID) error {
	taken, err := s.users.EmailTaken(ctx, email, excludeUserID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if taken {
		return apperror.NewValidation(map[string]string{
			"email": "User with this email already exists.",
		})
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	p scope.Principal,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("name", req.Name),
		zap.String("role", p.Role),
	)

	companyID, err := s.resolveCompany(p, req.Company)
	if err != nil {
		return EmployeeResponse{}, err
	}

	policy := scope.ForRole(p.Role)
	if !policy.CanWrite(p, companyID) {
		return EmployeeResponse{}, apperror.ErrForbidden
	}

	if _, err := s.validateDepartment(ctx, p, req.Department, companyID); err != nil {
		return EmployeeResponse{}, err
	}

	email := identity.NormalizeEmail(req.Email)
	if err := s.checkEmailFree(ctx, email, uuid.Nil); err != nil {
		return EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return EmployeeResponse{}, apperror.ErrInternal
	}

	hiredOn, err := parseHiredOn(req.HiredOn)
	if err != nil {
		return EmployeeResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}

	user := &identity.User{
		Email:    email,
		Password: string(hash),
		Role:     scope.RoleEmployee,
	}
	user.SetName(req.Name)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("company")
	}
	departmentUUID, err := uuid.Parse(req.Department)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("department")
	}

	emp := &Employee{
		CompanyID:    companyUUID,
		DepartmentID: departmentUUID,
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
		Designation:  req.Designation,
		Status:       status,
		HiredOn:      hiredOn,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		emp.UserID = user.ID
		if err := s.repo.WithTx(tx).Create(ctx, emp); err != nil {
			return err
		}
		return s.enqueueCreatedEvent(ctx, tx, emp)
	})
	if err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.User = user
	s.logger.Info("create employee success", zap.String("employee_id", emp.ID.String()))
	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, p scope.Principal) ([]EmployeeResponse, error) {
	policy := scope.ForRole(p.Role)

	emps, err := s.repo.FindAll(ctx, policy.Employees(p))
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToResponses(emps), nil
}

func (s *service) GetAllByDepartment(
	ctx context.Context,
	p scope.Principal,
	departmentID string,
) ([]EmployeeResponse, error) {
	policy := scope.ForRole(p.Role)

	// The department must be visible first, so an out-of-company ID
	// reads as not found rather than an empty list.
	if _, err := s.repo.GetDepartment(ctx, departmentID, policy.Departments(p)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, mapRepositoryError(err)
	}

	emps, err := s.repo.FindAllByDepartment(ctx, departmentID, policy.Employees(p))
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToResponses(emps), nil
}

func (s *service) GetByID(ctx context.Context, p scope.Principal, id string) (EmployeeResponse, error) {
	policy := scope.ForRole(p.Role)

	emp, err := s.repo.FindByID(ctx, id, policy.Employees(p))
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	p scope.Principal,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	policy := scope.ForRole(p.Role)

	emp, err := s.repo.FindByID(ctx, id, policy.Employees(p))
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if !policy.CanWrite(p, emp.CompanyID.String()) {
		return EmployeeResponse{}, apperror.ErrForbidden
	}

	if req.Department != nil && *req.Department != emp.DepartmentID.String() {
		if _, err := s.validateDepartment(ctx, p, *req.Department, emp.CompanyID.String()); err != nil {
			return EmployeeResponse{}, err
		}
		departmentUUID, err := uuid.Parse(*req.Department)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("department")
		}
		emp.DepartmentID = departmentUUID
	}

	userChanged := false

	if req.Email != nil {
		email := identity.NormalizeEmail(*req.Email)
		if email != emp.User.Email {
			if err := s.checkEmailFree(ctx, email, emp.UserID); err != nil {
				return EmployeeResponse{}, err
			}
			emp.User.Email = email
			userChanged = true
		}
	}

	if req.Role != nil && *req.Role != emp.User.Role {
		// Role reassignment is reserved to admins and managers.
		if p.Role != scope.RoleAdmin && p.Role != scope.RoleManager {
			return EmployeeResponse{}, apperror.ErrForbidden
		}
		emp.User.Role = *req.Role
		userChanged = true
	}

	if req.Name != nil {
		emp.Name = *req.Name
		emp.User.SetName(*req.Name)
		userChanged = true
	}

	if req.MobileNumber != nil {
		emp.MobileNumber = *req.MobileNumber
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.HiredOn != nil {
		hiredOn, err := parseHiredOn(req.HiredOn)
		if err != nil {
			return EmployeeResponse{}, err
		}
		emp.HiredOn = hiredOn
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if userChanged {
			if err := s.users.WithTx(tx).Update(ctx, emp.User); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Update(ctx, emp)
	})
	if err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*emp), nil
}

// Delete removes the employee together with its identity record, so
// the freed email can be reused immediately.
func (s *service) Delete(ctx context.Context, p scope.Principal, id string) error {
	policy := scope.ForRole(p.Role)

	emp, err := s.repo.FindByID(ctx, id, policy.Employees(p))
	if err != nil {
		return mapRepositoryError(err)
	}

	if !policy.CanWrite(p, emp.CompanyID.String()) {
		return apperror.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := s.users.WithTx(tx).Delete(ctx, emp.UserID.String()); err != nil {
			return err
		}
		return s.enqueueDeletedEvent(ctx, tx, emp)
	})
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) GetProfile(ctx context.Context, p scope.Principal) (EmployeeResponse, error) {
	emp, err := s.repo.FindByUserID(ctx, p.UserID)
	if err != nil {
		return EmployeeResponse{}, mapProfileError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) UpdateProfile(
	ctx context.Context,
	p scope.Principal,
	req UpdateProfileRequest,
) (EmployeeResponse, error) {
	emp, err := s.repo.FindByUserID(ctx, p.UserID)
	if err != nil {
		return EmployeeResponse{}, mapProfileError(err)
	}

	userChanged := false
	if req.Name != nil {
		emp.Name = *req.Name
		emp.User.SetName(*req.Name)
		userChanged = true
	}
	if req.MobileNumber != nil {
		emp.MobileNumber = *req.MobileNumber
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if userChanged {
			if err := s.users.WithTx(tx).Update(ctx, emp.User); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Update(ctx, emp)
	})
	if err != nil {
		s.logger.Error("update profile persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update profile success", zap.String("employee_id", emp.ID.String()))
	return mapToResponse(*emp), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *gorm.DB, emp *Employee) error {
	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:    events.EmployeeCreatedType,
		EmployeeID:   emp.ID.String(),
		CompanyID:    emp.CompanyID.String(),
		DepartmentID: emp.DepartmentID.String(),
		Status:       emp.Status,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, &kafka.OutboxEvent{
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     events.EmployeeCreatedType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueDeletedEvent(ctx context.Context, tx *gorm.DB, emp *Employee) error {
	payload, err := json.Marshal(events.EmployeeDeletedEvent{
		EventType:  events.EmployeeDeletedType,
		EmployeeID: emp.ID.String(),
		CompanyID:  emp.CompanyID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, &kafka.OutboxEvent{
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     events.EmployeeDeletedType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapProfileError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrProfileNotFound
	}
	return mapRepositoryError(err)
}

func parseHiredOn(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(hiredOnLayout, *raw)
	if err != nil {
		return nil, apperror.InvalidField("hired_on")
	}
	return &t, nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           emp.ID.String(),
		User:         emp.UserID.String(),
		Company:      emp.CompanyID.String(),
		Department:   emp.DepartmentID.String(),
		Name:         emp.Name,
		MobileNumber: emp.MobileNumber,
		Address:      emp.Address,
		Designation:  emp.Designation,
		Status:       emp.Status,
		DaysEmployed: emp.DaysEmployed(time.Now()),
	}
	if emp.User != nil {
		resp.Email = emp.User.Email
		resp.Role = emp.User.Role
	}
	if emp.HiredOn != nil {
		hired := emp.HiredOn.Format(hiredOnLayout)
		resp.HiredOn = &hired
	}
	return resp
}

func mapToResponses(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp
}

package department

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-empdir/internal/events"
	"go-empdir/internal/messaging/kafka"
	"go-empdir/internal/scope"
	"go-empdir/internal/shared/apperror"
	"go-empdir/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p scope.Principal, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, p scope.Principal) ([]DepartmentResponse, error)
	GetAllByCompany(ctx context.Context, p scope.Principal, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, p scope.Principal, id string) (DepartmentResponse, error)
	Update(ctx context.Context, p scope.Principal, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, p scope.Principal, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

// resolveCompany decides which company a new department belongs to.
// Managers always create inside their own company regardless of the
// request body; admins must name an existing company explicitly.
func (s *service) resolveCompany(
	ctx context.Context,
	p scope.Principal,
	requested string,
) (uuid.UUID, error) {
	policy := scope.ForRole(p.Role)

	target := requested
	if p.Role == scope.RoleManager {
		target = p.CompanyID
	}
	if target == "" {
		return uuid.Nil, apperror.RequiredField("company")
	}

	ref, err := s.repo.FindCompany(ctx, target, policy.Companies(p))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.NewValidation(map[string]string{
				"company": "Company not found.",
			})
		}
		return uuid.Nil, mapRepositoryError(err)
	}

	return ref.ID, nil
}

func (s *service) Create(
	ctx context.Context,
	p scope.Principal,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	s.logger.Debug("create department requested",
		zap.String("name", req.Name),
		zap.String("role", p.Role),
	)

	companyID, err := s.resolveCompany(ctx, p, req.Company)
	if err != nil {
		return DepartmentResponse{}, err
	}

	policy := scope.ForRole(p.Role)
	if !policy.CanWrite(p, companyID.String()) {
		return DepartmentResponse{}, apperror.ErrForbidden
	}

	dept := &Department{Name: req.Name, CompanyID: companyID}
	if err := s.repo.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create department success", zap.String("department_id", dept.ID.String()))
	return s.mapToResponse(ctx, *dept)
}

func (s *service) GetAll(ctx context.Context, p scope.Principal) ([]DepartmentResponse, error) {
	policy := scope.ForRole(p.Role)

	depts, err := s.repo.FindAll(ctx, policy.Departments(p))
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.mapToResponses(ctx, depts)
}

func (s *service) GetAllByCompany(
	ctx context.Context,
	p scope.Principal,
	companyID string,
) ([]DepartmentResponse, error) {
	policy := scope.ForRole(p.Role)

	// The parent company must be visible before its children are listed,
	// so an out-of-company ID reads as not found rather than empty.
	if _, err := s.repo.FindCompany(ctx, companyID, policy.Companies(p)); err != nil {
		return nil, mapCompanyLookupError(err)
	}

	depts, err := s.repo.FindAllByCompany(ctx, companyID, policy.Departments(p))
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.mapToResponses(ctx, depts)
}

func (s *service) GetByID(ctx context.Context, p scope.Principal, id string) (DepartmentResponse, error) {
	policy := scope.ForRole(p.Role)

	dept, err := s.repo.FindByID(ctx, id, policy.Departments(p))
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return s.mapToResponse(ctx, *dept)
}

func (s *service) Update(
	ctx context.Context,
	p scope.Principal,
	id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	policy := scope.ForRole(p.Role)

	dept, err := s.repo.FindByID(ctx, id, policy.Departments(p))
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if !policy.CanWrite(p, dept.CompanyID.String()) {
		return DepartmentResponse{}, apperror.ErrForbidden
	}

	dept.Name = req.Name
	if err := s.repo.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update department success", zap.String("department_id", id))
	return s.mapToResponse(ctx, *dept)
}

// Delete removes the department together with its employees and their
// identity records, in one transaction.
func (s *service) Delete(ctx context.Context, p scope.Principal, id string) error {
	policy := scope.ForRole(p.Role)

	dept, err := s.repo.FindByID(ctx, id, policy.Departments(p))
	if err != nil {
		return mapRepositoryError(err)
	}

	if !policy.CanWrite(p, dept.CompanyID.String()) {
		return apperror.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		employees, err := repo.ListEmployees(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.DeleteEmployees(ctx, id); err != nil {
			return err
		}
		userIDs := make([]string, len(employees))
		for i, emp := range employees {
			userIDs[i] = emp.UserID.String()
		}
		if err := repo.DeleteUsers(ctx, userIDs); err != nil {
			return err
		}
		for _, emp := range employees {
			if err := s.enqueueEmployeeDeleted(ctx, tx, emp); err != nil {
				return err
			}
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("delete department failed", zap.String("department_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

func (s *service) enqueueEmployeeDeleted(ctx context.Context, tx *gorm.DB, emp EmployeeRef) error {
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

func (s *service) mapToResponse(ctx context.Context, dept Department) (DepartmentResponse, error) {
	employees, err := s.repo.CountEmployees(ctx, dept.ID.String())
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return DepartmentResponse{
		ID:                dept.ID.String(),
		Company:           dept.CompanyID.String(),
		Name:              dept.Name,
		NumberOfEmployees: employees,
	}, nil
}

func (s *service) mapToResponses(ctx context.Context, depts []Department) ([]DepartmentResponse, error) {
	resp := make([]DepartmentResponse, len(depts))
	for i, dept := range depts {
		r, err := s.mapToResponse(ctx, dept)
		if err != nil {
			return nil, err
		}
		resp[i] = r
	}
	return resp, nil
}

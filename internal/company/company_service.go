package company

import (
	"context"
	"fmt"

	"go-empdir/internal/scope"
	"go-empdir/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p scope.Principal, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context, p scope.Principal) ([]CompanyResponse, error)
	GetByID(ctx context.Context, p scope.Principal, id string) (CompanyResponse, error)
	Update(ctx context.Context, p scope.Principal, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, p scope.Principal, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	p scope.Principal,
	req CreateCompanyRequest,
) (CompanyResponse, error) {
	s.logger.Debug("create company requested", zap.String("name", req.Name))

	c := &Company{Name: req.Name}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create company success", zap.String("company_id", c.ID.String()))
	return s.mapToResponse(ctx, *c)
}

func (s *service) GetAll(ctx context.Context, p scope.Principal) ([]CompanyResponse, error) {
	policy := scope.ForRole(p.Role)

	companies, err := s.repo.FindAll(ctx, policy.Companies(p))
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		r, err := s.mapToResponse(ctx, c)
		if err != nil {
			return nil, err
		}
		resp[i] = r
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, p scope.Principal, id string) (CompanyResponse, error) {
	policy := scope.ForRole(p.Role)

	c, err := s.repo.FindByID(ctx, id, policy.Companies(p))
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return s.mapToResponse(ctx, *c)
}

func (s *service) Update(
	ctx context.Context,
	p scope.Principal,
	id string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {
	policy := scope.ForRole(p.Role)

	c, err := s.repo.FindByID(ctx, id, policy.Companies(p))
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if !policy.CanWrite(p, c.ID.String()) {
		return CompanyResponse{}, apperror.ErrForbidden
	}

	c.Name = req.Name
	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update company persist failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update company success", zap.String("company_id", id))
	return s.mapToResponse(ctx, *c)
}

// Delete removes the company and everything it owns: departments,
// employees and the employees' identity records, in one transaction.
func (s *service) Delete(ctx context.Context, p scope.Principal, id string) error {
	policy := scope.ForRole(p.Role)

	c, err := s.repo.FindByID(ctx, id, policy.Companies(p))
	if err != nil {
		return mapRepositoryError(err)
	}

	if !policy.CanWrite(p, c.ID.String()) {
		return apperror.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		userIDs, err := repo.ListEmployeeUserIDs(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.DeleteEmployees(ctx, id); err != nil {
			return err
		}
		if err := repo.DeleteUsers(ctx, userIDs); err != nil {
			return err
		}
		if err := repo.DeleteDepartments(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("delete company failed", zap.String("company_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete company success", zap.String("company_id", id))
	return nil
}

// stats recomputes the derived counts. Concurrent requests for the same
// company share one computation; the result is never stored, so counts
// stay live.
func (s *service) stats(ctx context.Context, companyID string) (Stats, error) {
	v, err, _ := s.sf.Do(fmt.Sprintf("company:stats:%s", companyID), func() (interface{}, error) {
		departments, err := s.repo.CountDepartments(ctx, companyID)
		if err != nil {
			return Stats{}, err
		}
		employees, err := s.repo.CountEmployees(ctx, companyID)
		if err != nil {
			return Stats{}, err
		}
		return Stats{Departments: departments, Employees: employees}, nil
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}

func (s *service) mapToResponse(ctx context.Context, c Company) (CompanyResponse, error) {
	st, err := s.stats(ctx, c.ID.String())
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return CompanyResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		NumberOfDepartments: st.Departments,
		NumberOfEmployees:   st.Employees,
	}, nil
}

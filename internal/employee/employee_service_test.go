package employee_test

import (
	"context"
	"testing"
	"time"

	"go-empdir/internal/employee"
	"go-empdir/internal/events"
	"go-empdir/internal/identity"
	"go-empdir/internal/messaging/kafka"
	"go-empdir/internal/scope"
	"go-empdir/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	CreateFn              func(ctx context.Context, emp *employee.Employee) error
	FindAllFn             func(ctx context.Context, visible scope.Filter) ([]employee.Employee, error)
	FindAllByDepartmentFn func(ctx context.Context, departmentID string, visible scope.Filter) ([]employee.Employee, error)
	FindByIDFn            func(ctx context.Context, id string, visible scope.Filter) (*employee.Employee, error)
	FindByUserIDFn        func(ctx context.Context, userID string) (*employee.Employee, error)
	UpdateFn              func(ctx context.Context, emp *employee.Employee) error
	DeleteFn              func(ctx context.Context, id string) error
	GetDepartmentFn       func(ctx context.Context, id string, visible scope.Filter) (*employee.DepartmentRef, error)
	GetCompanyFn          func(ctx context.Context, id string) (*employee.CompanyParentRef, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error {
	return f.CreateFn(ctx, emp)
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context, visible scope.Filter) ([]employee.Employee, error) {
	return f.FindAllFn(ctx, visible)
}
func (f *fakeEmployeeRepo) FindAllByDepartment(ctx context.Context, departmentID string, visible scope.Filter) ([]employee.Employee, error) {
	return f.FindAllByDepartmentFn(ctx, departmentID, visible)
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string, visible scope.Filter) (*employee.Employee, error) {
	return f.FindByIDFn(ctx, id, visible)
}
func (f *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return f.FindByUserIDFn(ctx, userID)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error {
	return f.UpdateFn(ctx, emp)
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return f.DeleteFn(ctx, id) }
func (f *fakeEmployeeRepo) GetDepartment(ctx context.Context, id string, visible scope.Filter) (*employee.DepartmentRef, error) {
	return f.GetDepartmentFn(ctx, id, visible)
}
func (f *fakeEmployeeRepo) GetCompany(ctx context.Context, id string) (*employee.CompanyParentRef, error) {
	return f.GetCompanyFn(ctx, id)
}

type fakeUserRepo struct {
	CreateFn      func(ctx context.Context, u *identity.User) error
	FindByIDFn    func(ctx context.Context, id string) (*identity.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*identity.User, error)
	EmailTakenFn  func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	UpdateFn      func(ctx context.Context, u *identity.User) error
	DeleteFn      func(ctx context.Context, id string) error
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) identity.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *identity.User) error {
	return f.CreateFn(ctx, u)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*identity.User, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return f.FindByEmailFn(ctx, email)
}
func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return f.EmailTakenFn(ctx, email, excludeID)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *identity.User) error {
	return f.UpdateFn(ctx, u)
}
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return f.DeleteFn(ctx, id) }

type fakeOutboxRepo struct {
	events []*kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event *kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func mockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func validCreateRequest(companyID, departmentID string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:         "Jane Doe",
		Email:        "Jane@Example.com",
		Password:     "s3cretpass",
		Company:      companyID,
		Department:   departmentID,
		MobileNumber: "+15550001111",
		Designation:  "Engineer",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	departmentID := uuid.New()

	t.Run("creates user and employee atomically with lifecycle event", func(t *testing.T) {
		db, mock := mockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		outbox := &fakeOutboxRepo{}
		var createdUser *identity.User
		users := &fakeUserRepo{
			EmailTakenFn: func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
				assert.Equal(t, "jane@example.com", email)
				assert.Equal(t, uuid.Nil, excludeID)
				return false, nil
			},
			CreateFn: func(ctx context.Context, u *identity.User) error {
				u.ID = uuid.New()
				createdUser = u
				return nil
			},
		}
		repo := &fakeEmployeeRepo{
			GetDepartmentFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.DepartmentRef, error) {
				return &employee.DepartmentRef{ID: departmentID, Name: "Engineering", CompanyID: companyID}, nil
			},
			CreateFn: func(ctx context.Context, emp *employee.Employee) error {
				emp.ID = uuid.New()
				return nil
			},
		}

		svc := employee.NewService(db, repo, users, outbox)
		resp, err := svc.Create(ctx, scope.Principal{UserID: "u1", Role: scope.RoleAdmin},
			validCreateRequest(companyID.String(), departmentID.String()))

		require.NoError(t, err)
		require.NotNil(t, createdUser)
		assert.Equal(t, "jane@example.com", createdUser.Email)
		assert.Equal(t, "Jane", createdUser.FirstName)
		assert.Equal(t, "Doe", createdUser.LastName)
		assert.Equal(t, scope.RoleEmployee, createdUser.Role)
		assert.NoError(t,
			bcrypt.CompareHashAndPassword([]byte(createdUser.Password), []byte("s3cretpass")))

		assert.Equal(t, employee.StatusPending, resp.Status)
		assert.Equal(t, int64(0), resp.DaysEmployed)

		require.Len(t, outbox.events, 1)
		assert.Equal(t, events.EmployeeCreatedType, outbox.events[0].EventType)
		assert.Equal(t, events.EmployeeLifecycleTopic, outbox.events[0].Topic)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("department of another company names both sides", func(t *testing.T) {
		db, _ := mockGorm(t)

		otherCompany := uuid.New()
		repo := &fakeEmployeeRepo{
			GetDepartmentFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.DepartmentRef, error) {
				return &employee.DepartmentRef{ID: departmentID, Name: "Engineering", CompanyID: otherCompany}, nil
			},
			GetCompanyFn: func(ctx context.Context, id string) (*employee.CompanyParentRef, error) {
				return &employee.CompanyParentRef{ID: companyID, Name: "Initech"}, nil
			},
		}

		svc := employee.NewService(db, repo, &fakeUserRepo{}, &fakeOutboxRepo{})
		_, err := svc.Create(ctx, scope.Principal{UserID: "u1", Role: scope.RoleAdmin},
			validCreateRequest(companyID.String(), departmentID.String()))

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t,
			"Department Engineering does not belong to company Initech.",
			appErr.Fields["department"])
	})

	t.Run("taken email fails before anything persists", func(t *testing.T) {
		db, _ := mockGorm(t)

		userCreated := false
		users := &fakeUserRepo{
			EmailTakenFn: func(context.Context, string, uuid.UUID) (bool, error) { return true, nil },
			CreateFn: func(context.Context, *identity.User) error {
				userCreated = true
				return nil
			},
		}
		repo := &fakeEmployeeRepo{
			GetDepartmentFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.DepartmentRef, error) {
				return &employee.DepartmentRef{ID: departmentID, Name: "Engineering", CompanyID: companyID}, nil
			},
		}

		svc := employee.NewService(db, repo, users, &fakeOutboxRepo{})
		_, err := svc.Create(ctx, scope.Principal{UserID: "u1", Role: scope.RoleAdmin},
			validCreateRequest(companyID.String(), departmentID.String()))

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "email")
		assert.False(t, userCreated)
	})

	t.Run("manager naming another company is rejected", func(t *testing.T) {
		db, _ := mockGorm(t)

		created := false
		repo := &fakeEmployeeRepo{
			CreateFn: func(context.Context, *employee.Employee) error {
				created = true
				return nil
			},
		}

		svc := employee.NewService(db, repo, &fakeUserRepo{}, &fakeOutboxRepo{})
		ownCompany := uuid.New()
		p := scope.Principal{UserID: "u1", CompanyID: ownCompany.String(), Role: scope.RoleManager}
		_, err := svc.Create(ctx, p, validCreateRequest(companyID.String(), departmentID.String()))

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t,
			"You can only create employees for your own company.",
			appErr.Fields["company"])
		assert.False(t, created)
	})

	t.Run("manager omitting the company hires into their own", func(t *testing.T) {
		db, mock := mockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ownCompany := uuid.New()
		var created *employee.Employee
		repo := &fakeEmployeeRepo{
			GetDepartmentFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.DepartmentRef, error) {
				return &employee.DepartmentRef{ID: departmentID, Name: "Engineering", CompanyID: ownCompany}, nil
			},
			CreateFn: func(ctx context.Context, emp *employee.Employee) error {
				created = emp
				return nil
			},
		}
		users := &fakeUserRepo{
			EmailTakenFn: func(context.Context, string, uuid.UUID) (bool, error) { return false, nil },
			CreateFn: func(ctx context.Context, u *identity.User) error {
				u.ID = uuid.New()
				return nil
			},
		}

		svc := employee.NewService(db, repo, users, &fakeOutboxRepo{})
		p := scope.Principal{UserID: "u1", CompanyID: ownCompany.String(), Role: scope.RoleManager}
		_, err := svc.Create(ctx, p, validCreateRequest("", departmentID.String()))

		require.NoError(t, err)
		assert.Equal(t, ownCompany, created.CompanyID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	makeEmployee := func() *employee.Employee {
		return &employee.Employee{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			CompanyID:    companyID,
			DepartmentID: uuid.New(),
			Name:         "Jane Doe",
			Status:       employee.StatusActive,
			User: &identity.User{
				Email: "jane@example.com",
				Role:  scope.RoleEmployee,
			},
		}
	}

	t.Run("manager can change roles", func(t *testing.T) {
		db, mock := mockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		emp := makeEmployee()
		var savedUser *identity.User
		repo := &fakeEmployeeRepo{
			FindByIDFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.Employee, error) {
				return emp, nil
			},
			UpdateFn: func(context.Context, *employee.Employee) error { return nil },
		}
		users := &fakeUserRepo{
			UpdateFn: func(ctx context.Context, u *identity.User) error {
				savedUser = u
				return nil
			},
		}

		svc := employee.NewService(db, repo, users, &fakeOutboxRepo{})
		p := scope.Principal{UserID: "u1", CompanyID: companyID.String(), Role: scope.RoleManager}
		role := scope.RoleManager
		resp, err := svc.Update(ctx, p, emp.ID.String(), employee.UpdateEmployeeRequest{Role: &role})

		require.NoError(t, err)
		require.NotNil(t, savedUser)
		assert.Equal(t, scope.RoleManager, savedUser.Role)
		assert.Equal(t, scope.RoleManager, resp.Role)
	})

	t.Run("email change excludes own user from uniqueness check", func(t *testing.T) {
		db, mock := mockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		emp := makeEmployee()
		repo := &fakeEmployeeRepo{
			FindByIDFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.Employee, error) {
				return emp, nil
			},
			UpdateFn: func(context.Context, *employee.Employee) error { return nil },
		}
		users := &fakeUserRepo{
			EmailTakenFn: func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
				assert.Equal(t, emp.UserID, excludeID)
				return false, nil
			},
			UpdateFn: func(context.Context, *identity.User) error { return nil },
		}

		svc := employee.NewService(db, repo, users, &fakeOutboxRepo{})
		p := scope.Principal{UserID: "u1", Role: scope.RoleAdmin}
		email := "new@example.com"
		resp, err := svc.Update(ctx, p, emp.ID.String(), employee.UpdateEmployeeRequest{Email: &email})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)
	})

	t.Run("name change re-splits the identity name", func(t *testing.T) {
		db, mock := mockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		emp := makeEmployee()
		var savedUser *identity.User
		repo := &fakeEmployeeRepo{
			FindByIDFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.Employee, error) {
				return emp, nil
			},
			UpdateFn: func(context.Context, *employee.Employee) error { return nil },
		}
		users := &fakeUserRepo{
			UpdateFn: func(ctx context.Context, u *identity.User) error {
				savedUser = u
				return nil
			},
		}

		svc := employee.NewService(db, repo, users, &fakeOutboxRepo{})
		p := scope.Principal{UserID: "u1", Role: scope.RoleAdmin}
		name := "Maria del Carmen"
		_, err := svc.Update(ctx, p, emp.ID.String(), employee.UpdateEmployeeRequest{Name: &name})

		require.NoError(t, err)
		require.NotNil(t, savedUser)
		assert.Equal(t, "Maria", savedUser.FirstName)
		assert.Equal(t, "del Carmen", savedUser.LastName)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("removes identity record and emits lifecycle event", func(t *testing.T) {
		db, mock := mockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		emp := &employee.Employee{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			CompanyID: companyID,
			User:      &identity.User{Email: "jane@example.com"},
		}

		var deletedUserID string
		outbox := &fakeOutboxRepo{}
		repo := &fakeEmployeeRepo{
			FindByIDFn: func(ctx context.Context, id string, visible scope.Filter) (*employee.Employee, error) {
				return emp, nil
			},
			DeleteFn: func(context.Context, string) error { return nil },
		}
		users := &fakeUserRepo{
			DeleteFn: func(ctx context.Context, id string) error {
				deletedUserID = id
				return nil
			},
		}

		svc := employee.NewService(db, repo, users, outbox)
		p := scope.Principal{UserID: "u1", CompanyID: companyID.String(), Role: scope.RoleManager}
		err := svc.Delete(ctx, p, emp.ID.String())

		require.NoError(t, err)
		assert.Equal(t, emp.UserID.String(), deletedUserID)
		require.Len(t, outbox.events, 1)
		assert.Equal(t, events.EmployeeDeletedType, outbox.events[0].EventType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("principal without employee record gets not found", func(t *testing.T) {
		db, _ := mockGorm(t)
		repo := &fakeEmployeeRepo{
			FindByUserIDFn: func(ctx context.Context, userID string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := employee.NewService(db, repo, &fakeUserRepo{}, &fakeOutboxRepo{})
		_, err := svc.GetProfile(ctx, scope.Principal{UserID: "u1", Role: scope.RoleAdmin})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}

func TestDaysEmployed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("unset hire date is zero", func(t *testing.T) {
		e := employee.Employee{}
		assert.Equal(t, int64(0), e.DaysEmployed(now))
	})

	t.Run("counts whole days since hiring", func(t *testing.T) {
		hired := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		e := employee.Employee{HiredOn: &hired}
		assert.Equal(t, int64(9), e.DaysEmployed(now))
	})

	t.Run("future hire date is zero", func(t *testing.T) {
		hired := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		e := employee.Employee{HiredOn: &hired}
		assert.Equal(t, int64(0), e.DaysEmployed(now))
	})
}

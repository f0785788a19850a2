package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-empdir/internal/company"
	companyerrors "go-empdir/internal/company/errors"
	"go-empdir/internal/scope"
	"go-empdir/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	apperror.Init()
	os.Exit(m.Run())
}

type fakeCompanyService struct {
	CreateFn  func(ctx context.Context, p scope.Principal, req company.CreateCompanyRequest) (company.CompanyResponse, error)
	GetAllFn  func(ctx context.Context, p scope.Principal) ([]company.CompanyResponse, error)
	GetByIDFn func(ctx context.Context, p scope.Principal, id string) (company.CompanyResponse, error)
	UpdateFn  func(ctx context.Context, p scope.Principal, id string, req company.UpdateCompanyRequest) (company.CompanyResponse, error)
	DeleteFn  func(ctx context.Context, p scope.Principal, id string) error
}

func (f *fakeCompanyService) Create(ctx context.Context, p scope.Principal, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	return f.CreateFn(ctx, p, req)
}
func (f *fakeCompanyService) GetAll(ctx context.Context, p scope.Principal) ([]company.CompanyResponse, error) {
	return f.GetAllFn(ctx, p)
}
func (f *fakeCompanyService) GetByID(ctx context.Context, p scope.Principal, id string) (company.CompanyResponse, error) {
	return f.GetByIDFn(ctx, p, id)
}
func (f *fakeCompanyService) Update(ctx context.Context, p scope.Principal, id string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	return f.UpdateFn(ctx, p, id, req)
}
func (f *fakeCompanyService) Delete(ctx context.Context, p scope.Principal, id string) error {
	return f.DeleteFn(ctx, p, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asPrincipal(role, companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Set("role", role)
		c.Set("company_id", companyID)
		c.Next()
	}
}

func TestCompanyHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeCompanyService{
			CreateFn: func(ctx context.Context, p scope.Principal, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
				assert.Equal(t, scope.RoleAdmin, p.Role)
				return company.CompanyResponse{ID: uuid.New().String(), Name: req.Name}, nil
			},
		}
		h := company.NewHandler(svc)

		r := setupRouter()
		r.POST("/companies", asPrincipal(scope.RoleAdmin, ""), h.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"name":"Initech"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Initech"`)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		h := company.NewHandler(&fakeCompanyService{})

		r := setupRouter()
		r.POST("/companies", asPrincipal(scope.RoleAdmin, ""), h.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name")
	})
}

func TestCompanyHandler_GetAll(t *testing.T) {
	svc := &fakeCompanyService{
		GetAllFn: func(ctx context.Context, p scope.Principal) ([]company.CompanyResponse, error) {
			assert.Equal(t, scope.RoleManager, p.Role)
			assert.Equal(t, "c1", p.CompanyID)
			return []company.CompanyResponse{
				{ID: "c1", Name: "Initech", NumberOfDepartments: 2, NumberOfEmployees: 9},
			}, nil
		},
	}
	h := company.NewHandler(svc)

	r := setupRouter()
	r.GET("/companies", asPrincipal(scope.RoleManager, "c1"), h.GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"number_of_employees":9`)
}

func TestCompanyHandler_GetById_NotFound(t *testing.T) {
	svc := &fakeCompanyService{
		GetByIDFn: func(ctx context.Context, p scope.Principal, id string) (company.CompanyResponse, error) {
			return company.CompanyResponse{}, companyerrors.ErrCompanyNotFound
		},
	}
	h := company.NewHandler(svc)

	r := setupRouter()
	r.GET("/companies/:id", asPrincipal(scope.RoleEmployee, "c1"), h.GetById)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/"+uuid.New().String(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestCompanyHandler_Delete(t *testing.T) {
	called := false
	svc := &fakeCompanyService{
		DeleteFn: func(ctx context.Context, p scope.Principal, id string) error {
			called = true
			return nil
		},
	}
	h := company.NewHandler(svc)

	r := setupRouter()
	r.DELETE("/companies/:id", asPrincipal(scope.RoleAdmin, ""), h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/companies/"+uuid.New().String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

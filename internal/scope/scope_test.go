package scope_test

import (
	"testing"

	"go-empdir/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db
}

// renderSQL applies a filter to a plain table query and returns the SQL
// gorm would run.
func renderSQL(t *testing.T, db *gorm.DB, table string, f scope.Filter) (string, []interface{}) {
	t.Helper()

	var rows []map[string]interface{}
	tx := db.Table(table).Scopes(f).Find(&rows)
	require.NoError(t, tx.Error)

	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func TestAdminSeesEverything(t *testing.T) {
	db := dryRunDB(t)
	p := scope.Principal{UserID: "u1", Role: scope.RoleAdmin}
	policy := scope.ForRole(p.Role)

	for table, f := range map[string]scope.Filter{
		"companies":   policy.Companies(p),
		"departments": policy.Departments(p),
		"employees":   policy.Employees(p),
	} {
		sql, vars := renderSQL(t, db, table, f)
		assert.NotContains(t, sql, "WHERE", "admin filter on %s should add no conditions", table)
		assert.Empty(t, vars)
	}
}

func TestManagerScopedToOwnCompany(t *testing.T) {
	db := dryRunDB(t)
	p := scope.Principal{UserID: "u1", CompanyID: "c1", Role: scope.RoleManager}
	policy := scope.ForRole(p.Role)

	sql, vars := renderSQL(t, db, "companies", policy.Companies(p))
	assert.Contains(t, sql, "id = $1")
	assert.Equal(t, []interface{}{"c1"}, vars)

	sql, vars = renderSQL(t, db, "departments", policy.Departments(p))
	assert.Contains(t, sql, "company_id = $1")
	assert.Equal(t, []interface{}{"c1"}, vars)

	sql, vars = renderSQL(t, db, "employees", policy.Employees(p))
	assert.Contains(t, sql, "company_id = $1")
	assert.Equal(t, []interface{}{"c1"}, vars)
}

func TestManagerWithoutCompanySeesNothing(t *testing.T) {
	db := dryRunDB(t)
	p := scope.Principal{UserID: "u1", Role: scope.RoleManager}
	policy := scope.ForRole(p.Role)

	for table, f := range map[string]scope.Filter{
		"companies":   policy.Companies(p),
		"departments": policy.Departments(p),
		"employees":   policy.Employees(p),
	} {
		sql, _ := renderSQL(t, db, table, f)
		assert.Contains(t, sql, "1 = 0", "companyless manager should match nothing on %s", table)
	}
}

func TestEmployeeSeesOnlyOwnRecord(t *testing.T) {
	db := dryRunDB(t)
	p := scope.Principal{UserID: "u1", CompanyID: "c1", Role: scope.RoleEmployee}
	policy := scope.ForRole(p.Role)

	sql, vars := renderSQL(t, db, "employees", policy.Employees(p))
	assert.Contains(t, sql, "user_id = $1")
	assert.Equal(t, []interface{}{"u1"}, vars)

	// Company and departments stay visible for directory browsing.
	sql, _ = renderSQL(t, db, "companies", policy.Companies(p))
	assert.Contains(t, sql, "id = $1")

	sql, _ = renderSQL(t, db, "departments", policy.Departments(p))
	assert.Contains(t, sql, "company_id = $1")
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	db := dryRunDB(t)
	p := scope.Principal{UserID: "u1", CompanyID: "c1", Role: "superuser"}
	policy := scope.ForRole(p.Role)

	for table, f := range map[string]scope.Filter{
		"companies":   policy.Companies(p),
		"departments": policy.Departments(p),
		"employees":   policy.Employees(p),
	} {
		sql, _ := renderSQL(t, db, table, f)
		assert.Contains(t, sql, "1 = 0", "unknown role should match nothing on %s", table)
	}

	assert.False(t, policy.CanWrite(p, "c1"))
}

func TestCanWrite(t *testing.T) {
	admin := scope.Principal{UserID: "u1", Role: scope.RoleAdmin}
	manager := scope.Principal{UserID: "u2", CompanyID: "c1", Role: scope.RoleManager}
	employee := scope.Principal{UserID: "u3", CompanyID: "c1", Role: scope.RoleEmployee}

	assert.True(t, scope.ForRole(admin.Role).CanWrite(admin, "c1"))
	assert.True(t, scope.ForRole(admin.Role).CanWrite(admin, "c2"))

	assert.True(t, scope.ForRole(manager.Role).CanWrite(manager, "c1"))
	assert.False(t, scope.ForRole(manager.Role).CanWrite(manager, "c2"))

	companyless := scope.Principal{UserID: "u4", Role: scope.RoleManager}
	assert.False(t, scope.ForRole(companyless.Role).CanWrite(companyless, ""))

	assert.False(t, scope.ForRole(employee.Role).CanWrite(employee, "c1"))
}

package rbac_test

import (
	"testing"

	"go-empdir/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforce_WriteMatrix(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"admin", "company", "write", true},
		{"admin", "department", "write", true},
		{"admin", "employee", "write", true},

		{"manager", "company", "write", false},
		{"manager", "department", "write", true},
		{"manager", "employee", "write", true},

		{"employee", "company", "write", false},
		{"employee", "department", "write", false},
		{"employee", "employee", "write", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestEnforce_ReadsForAllRoles(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	for _, role := range []string{"admin", "manager", "employee"} {
		for _, resource := range []string{"company", "department", "employee"} {
			allowed, err := svc.Enforce(role, resource, "read")
			assert.NoError(t, err)
			assert.True(t, allowed, "%s should read %s", role, resource)
		}
	}
}

func TestEnforce_UnknownRoleDenied(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	allowed, err := svc.Enforce("intern", "employee", "read")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

// Package rbac gates requests by role, resource and action. The three
// directory roles are fixed, so the casbin policy is static and lives in
// memory; row-level narrowing is the scope package's job.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies is the full permission table. Reads go to every recognized
// role via the authenticated group; writes follow the ownership rules
// (company is admin-only, departments and employees are admin|manager).
var policies = [][]string{
	{"authenticated", "company", "read"},
	{"authenticated", "department", "read"},
	{"authenticated", "employee", "read"},
	{"authenticated", "profile", "read"},
	{"authenticated", "profile", "update"},

	{"admin", "company", "write"},
	{"admin", "department", "write"},
	{"admin", "employee", "write"},

	{"manager", "department", "write"},
	{"manager", "employee", "write"},
}

var groupings = [][]string{
	{"admin", "authenticated"},
	{"manager", "authenticated"},
	{"employee", "authenticated"},
}

//go:generate mockgen -source=enforcer.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

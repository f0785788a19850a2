// Package scope narrows what each role can see and touch. Every
// repository read goes through a Policy filter, so "exists but
// forbidden" and "does not exist" are indistinguishable to callers.
package scope

import "gorm.io/gorm"

// Filter is a gorm scope applied before any other query condition.
type Filter func(db *gorm.DB) *gorm.DB

// Policy answers, for one role, which rows of each collection are
// visible and whether a given instance is writable.
type Policy interface {
	Companies(p Principal) Filter
	Departments(p Principal) Filter
	Employees(p Principal) Filter

	// CanWrite reports whether the principal may mutate an instance
	// owned by companyID. Collection-level role gating happens earlier
	// (rbac middleware); this is the per-instance company check.
	CanWrite(p Principal, companyID string) bool
}

var registry = map[string]Policy{
	RoleAdmin:    adminPolicy{},
	RoleManager:  managerPolicy{},
	RoleEmployee: employeePolicy{},
}

// ForRole returns the policy for a role. Unrecognized roles get a
// deny-all policy whose filters select nothing.
func ForRole(role string) Policy {
	if p, ok := registry[role]; ok {
		return p
	}
	return denyAllPolicy{}
}

func all() Filter {
	return func(db *gorm.DB) *gorm.DB { return db }
}

func none() Filter {
	return func(db *gorm.DB) *gorm.DB { return db.Where("1 = 0") }
}

func ownCompany(companyID string) Filter {
	if companyID == "" {
		return none()
	}
	return func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", companyID) }
}

func companyChildren(companyID string) Filter {
	if companyID == "" {
		return none()
	}
	return func(db *gorm.DB) *gorm.DB { return db.Where("company_id = ?", companyID) }
}

type adminPolicy struct{}

func (adminPolicy) Companies(Principal) Filter   { return all() }
func (adminPolicy) Departments(Principal) Filter { return all() }
func (adminPolicy) Employees(Principal) Filter   { return all() }
func (adminPolicy) CanWrite(Principal, string) bool {
	return true
}

type managerPolicy struct{}

func (managerPolicy) Companies(p Principal) Filter   { return ownCompany(p.CompanyID) }
func (managerPolicy) Departments(p Principal) Filter { return companyChildren(p.CompanyID) }
func (managerPolicy) Employees(p Principal) Filter   { return companyChildren(p.CompanyID) }
func (managerPolicy) CanWrite(p Principal, companyID string) bool {
	return p.CompanyID != "" && p.CompanyID == companyID
}

type employeePolicy struct{}

func (employeePolicy) Companies(p Principal) Filter   { return ownCompany(p.CompanyID) }
func (employeePolicy) Departments(p Principal) Filter { return companyChildren(p.CompanyID) }
func (employeePolicy) Employees(p Principal) Filter {
	if p.UserID == "" {
		return none()
	}
	return func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", p.UserID) }
}
func (employeePolicy) CanWrite(Principal, string) bool {
	return false
}

type denyAllPolicy struct{}

func (denyAllPolicy) Companies(Principal) Filter      { return none() }
func (denyAllPolicy) Departments(Principal) Filter    { return none() }
func (denyAllPolicy) Employees(Principal) Filter      { return none() }
func (denyAllPolicy) CanWrite(Principal, string) bool { return false }

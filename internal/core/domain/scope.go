package domain

import "time"

// Scope restricts which records a caller may read.
// Admins see everything; everyone else sees only what they own.
type Scope struct {
	All        bool
	EmployeeID uint
}

// ScopeFor derives the read scope of an employee
func ScopeFor(e *Employee) Scope {
	if e.IsAdmin() {
		return Scope{All: true}
	}
	return Scope{EmployeeID: e.ID}
}

// Allows reports whether a record owned by ownerID is visible in this scope
func (s Scope) Allows(ownerID uint) bool {
	return s.All || s.EmployeeID == ownerID
}

// DateRange is an optional, inclusive time window
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range (both ends inclusive)
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

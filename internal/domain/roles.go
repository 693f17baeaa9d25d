package domain

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleWorker   Role = "worker"
)

// Roles are a flat set; login matches them exactly, there is no hierarchy.
var validRoles = []Role{RoleCustomer, RoleAdmin, RoleManager, RoleWorker}

func IsValidRole(r string) bool {
	for _, v := range validRoles {
		if string(v) == r {
			return true
		}
	}
	return false
}

// RoleList renders the accepted roles for client-facing messages.
func RoleList() string {
	out := make([]string, len(validRoles))
	for i, r := range validRoles {
		out[i] = string(r)
	}
	return strings.Join(out, ", ")
}

// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// RoleTable represents the 'role' table
type RoleTable struct {
	Table string
	ID    string
	Name  string
}

// Role is the schema definition for role
var Role = RoleTable{
	Table: "role",
	ID:    "id",
	Name:  "name",
}

// Columns returns all standard column names
func (t RoleTable) Columns() []string {
	return []string{t.ID, t.Name}
}

// RoleOnUserTable represents the 'role_on_user' join table
type RoleOnUserTable struct {
	Table  string
	UserID string
	RoleID string
}

// RoleOnUser is the schema definition for role_on_user
var RoleOnUser = RoleOnUserTable{
	Table:  "role_on_user",
	UserID: "userid",
	RoleID: "roleid",
}

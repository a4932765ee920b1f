// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserTable represents the '"user"' table
type UserTable struct {
	Table       string
	ID          string
	Login       string
	Password    string
	Name        string
	Surname     string
	PhoneNumber string
	Email       string
	Birthday    string
	CreatedAt   string
	UpdatedAt   string
}

// User is the schema definition for "user". The name is quoted because USER
// is reserved in Postgres.
var User = UserTable{
	Table:       `"user"`,
	ID:          "id",
	Login:       "login",
	Password:    "password",
	Name:        "name",
	Surname:     "surname",
	PhoneNumber: "phonenumber",
	Email:       "email",
	Birthday:    "birthday",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Login, t.Password, t.Name, t.Surname, t.PhoneNumber,
		t.Email, t.Birthday, t.CreatedAt, t.UpdatedAt,
	}
}

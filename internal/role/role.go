// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package role exposes the read-only catalogue of user roles.
package role

// Role is an authority that can be granted to a user.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListRoles(ctx context.Context) ([]*Role, error)
	GetRoleByID(ctx context.Context, id int64) (*Role, error)
}

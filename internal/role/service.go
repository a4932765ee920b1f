// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListRoles returns every role, ordered by ID. The result is never nil.
func (service *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	roles, err := service.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []*Role{}
	}
	return roles, nil
}

// GetRole returns the role with the given ID or a NotFound error.
func (service *Service) GetRole(ctx context.Context, id int64) (*Role, error) {
	return service.repo.GetRoleByID(ctx, id)
}

// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pizzanoir/internal/platform/database/schema"
	"github.com/taibuivan/pizzanoir/internal/platform/dberr"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func buildListRolesQuery() (string, []any, error) {
	return psql.Select(schema.Role.Columns()...).
		From(schema.Role.Table).
		OrderBy(schema.Role.ID + " ASC").
		ToSql()
}

func buildGetRoleQuery(id int64) (string, []any, error) {
	return psql.Select(schema.Role.Columns()...).
		From(schema.Role.Table).
		Where(sq.Eq{schema.Role.ID: id}).
		ToSql()
}

func (repository *PostgresRepository) ListRoles(ctx context.Context) ([]*Role, error) {
	query, args, err := buildListRolesQuery()
	if err != nil {
		return nil, fmt.Errorf("role_repo_build_query_failed: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "roles")
	}

	roles, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[Role])
	if err != nil {
		return nil, dberr.Wrap(err, "roles")
	}

	return roles, nil
}

func (repository *PostgresRepository) GetRoleByID(ctx context.Context, id int64) (*Role, error) {
	query, args, err := buildGetRoleQuery(id)
	if err != nil {
		return nil, fmt.Errorf("role_repo_build_query_failed: %w", err)
	}

	r := &Role{}
	if err := repository.db.QueryRow(ctx, query, args...).Scan(&r.ID, &r.Name); err != nil {
		return nil, dberr.Wrap(err, fmt.Sprintf("role with ID %d", id))
	}
	return r, nil
}

// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/database/schema"
	"github.com/taibuivan/pizzanoir/internal/platform/dberr"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// ErrDuplicateCredential is returned when login, email or phone is taken.
	ErrDuplicateCredential = apperr.DuplicateRegistration("User with prompted credential already exists")

	errUnknownRole = apperr.ValidationFailed("Invalid Role ID")
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// # Query Builders

func buildSelectUserQuery(where sq.Sqlizer, orderBy sq.Sqlizer) (string, []any, error) {
	query := psql.Select(schema.User.Columns()...).
		From(schema.User.Table).
		Where(where)

	if orderBy != nil {
		sql, args, err := orderBy.ToSql()
		if err != nil {
			return "", nil, err
		}
		query = query.OrderByClause(sql, args...)
	}

	return query.Limit(1).ToSql()
}

func buildSelectUserRolesQuery(userID int64) (string, []any, error) {
	return psql.Select(
		schema.Qualify(schema.Role.Table, schema.Role.ID),
		schema.Qualify(schema.Role.Table, schema.Role.Name),
	).
		From(schema.Role.Table).
		Join(fmt.Sprintf("%s ON %s = %s",
			schema.RoleOnUser.Table,
			schema.Qualify(schema.RoleOnUser.Table, schema.RoleOnUser.RoleID),
			schema.Qualify(schema.Role.Table, schema.Role.ID),
		)).
		Where(sq.Eq{schema.Qualify(schema.RoleOnUser.Table, schema.RoleOnUser.UserID): userID}).
		OrderBy(schema.Qualify(schema.Role.Table, schema.Role.ID)).
		ToSql()
}

func buildIdentifierQuery(identifier string) (string, []any, error) {
	where := sq.Or{
		sq.Eq{schema.User.Login: identifier},
		sq.Eq{schema.User.Email: identifier},
		sq.Eq{schema.User.PhoneNumber: identifier},
	}

	precedence := sq.Expr(
		fmt.Sprintf("CASE WHEN %s = ? THEN 0 WHEN %s = ? THEN 1 ELSE 2 END", schema.User.Login, schema.User.Email),
		identifier, identifier,
	)

	return buildSelectUserQuery(where, precedence)
}

func buildAnyCredentialQuery(login, email, phoneNumber string) (string, []any, error) {
	where := sq.Or{}
	if login != "" {
		where = append(where, sq.Eq{schema.User.Login: login})
	}
	if email != "" {
		where = append(where, sq.Eq{schema.User.Email: email})
	}
	if phoneNumber != "" {
		where = append(where, sq.Eq{schema.User.PhoneNumber: phoneNumber})
	}

	return buildSelectUserQuery(where, sq.Expr(schema.User.ID))
}

func buildInsertUserQuery(user *User) (string, []any, error) {
	return psql.Insert(schema.User.Table).
		Columns(
			schema.User.Login, schema.User.Password, schema.User.Name, schema.User.Surname,
			schema.User.PhoneNumber, schema.User.Email, schema.User.Birthday,
			schema.User.CreatedAt, schema.User.UpdatedAt,
		).
		Values(
			user.Login, user.PasswordHash, user.Name, user.Surname,
			user.PhoneNumber, user.Email, user.Birthday,
			user.CreatedAt, user.UpdatedAt,
		).
		Suffix("RETURNING " + schema.User.ID).
		ToSql()
}

func buildInsertUserRolesQuery(userID int64, roleIDs []int64) (string, []any, error) {
	insert := psql.Insert(schema.RoleOnUser.Table).
		Columns(schema.RoleOnUser.UserID, schema.RoleOnUser.RoleID)

	for _, roleID := range roleIDs {
		insert = insert.Values(userID, roleID)
	}

	return insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
}

// # Reads

// FindByID retrieves a user record and its roles by ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query, args, err := buildSelectUserQuery(sq.Eq{schema.User.ID: id}, nil)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_build_query_failed: %w", err)
	}
	return repository.findOne(ctx, query, args)
}

// FindByIdentifier retrieves a user by login, email or phone number.
func (repository *PostgresUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	if identifier == "" {
		return nil, apperr.NotFound("Unable to find user")
	}

	query, args, err := buildIdentifierQuery(identifier)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_build_query_failed: %w", err)
	}
	return repository.findOne(ctx, query, args)
}

// FindByAnyCredential retrieves a user matching any of the given credentials.
func (repository *PostgresUserRepository) FindByAnyCredential(ctx context.Context, login, email, phoneNumber string) (*User, error) {
	if login == "" && email == "" && phoneNumber == "" {
		return nil, apperr.NotFound("Unable to find user")
	}

	query, args, err := buildAnyCredentialQuery(login, email, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_build_query_failed: %w", err)
	}
	return repository.findOne(ctx, query, args)
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, query string, args []any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Login,
		&user.PasswordHash,
		&user.Name,
		&user.Surname,
		&user.PhoneNumber,
		&user.Email,
		&user.Birthday,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}

	roles, err := repository.findRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return user, nil
}

func (repository *PostgresUserRepository) findRoles(ctx context.Context, userID int64) ([]Role, error) {
	query, args, err := buildSelectUserRolesQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_build_query_failed: %w", err)
	}

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "role")
	}

	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Role, error) {
		var role Role
		err := row.Scan(&role.ID, &role.Name)
		return role, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "role")
	}

	return roles, nil
}

// # Writes

// Create inserts the user and its role links in one transaction.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User, roleIDs []int64) error {
	err := pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {
		query, args, err := buildInsertUserQuery(user)
		if err != nil {
			return fmt.Errorf("postgres_user_repo_build_query_failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&user.ID); err != nil {
			return err
		}

		if len(roleIDs) == 0 {
			return nil
		}

		query, args, err = buildInsertUserRolesQuery(user.ID, roleIDs)
		if err != nil {
			return fmt.Errorf("postgres_user_repo_build_query_failed: %w", err)
		}

		_, err = tx.Exec(ctx, query, args...)
		return err
	})

	if err == nil {
		return nil
	}

	switch {
	case dberr.IsUniqueViolation(err):
		return ErrDuplicateCredential.WithCause(err)
	case dberr.IsForeignKeyViolation(err):
		return errUnknownRole.WithCause(err)
	}

	return dberr.Wrap(err, "user")
}

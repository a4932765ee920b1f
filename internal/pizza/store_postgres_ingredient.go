// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/database/schema"
	"github.com/taibuivan/pizzanoir/internal/platform/dberr"
)

// PostgresIngredientRepository implements [IngredientRepository] using pgx.
type PostgresIngredientRepository struct {
	db *pgxpool.Pool
}

// NewPostgresIngredientRepository creates a new PostgreSQL [IngredientRepository].
func NewPostgresIngredientRepository(db *pgxpool.Pool) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{db: db}
}

func ingredientNotFound(id int64) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("Unable to find ingredient with id %d", id))
}

func buildSelectIngredientsQuery(where sq.Sqlizer) (string, []any, error) {
	query := psql.Select(schema.Ingredient.Columns()...).
		From(schema.Ingredient.Table).
		OrderBy(schema.Ingredient.ID + " ASC")
	if where != nil {
		query = query.Where(where)
	}
	return query.ToSql()
}

func (repository *PostgresIngredientRepository) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	query, args, err := buildSelectIngredientsQuery(nil)
	if err != nil {
		return nil, fmt.Errorf("ingredient_repo_build_query_failed: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "ingredients")
	}

	ingredients, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[Ingredient])
	if err != nil {
		return nil, dberr.Wrap(err, "ingredients")
	}
	return ingredients, nil
}

func (repository *PostgresIngredientRepository) GetIngredientByID(ctx context.Context, id int64) (*Ingredient, error) {
	query, args, err := buildSelectIngredientsQuery(sq.Eq{schema.Ingredient.ID: id})
	if err != nil {
		return nil, fmt.Errorf("ingredient_repo_build_query_failed: %w", err)
	}

	ingredient := &Ingredient{}
	err = repository.db.QueryRow(ctx, query, args...).Scan(&ingredient.ID, &ingredient.Name, &ingredient.AddPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ingredientNotFound(id).WithCause(err)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "ingredient")
	}
	return ingredient, nil
}

func (repository *PostgresIngredientRepository) FindIngredientsByIDs(ctx context.Context, ids []int64) ([]Ingredient, error) {
	if len(ids) == 0 {
		return []Ingredient{}, nil
	}

	query, args, err := buildSelectIngredientsQuery(sq.Eq{schema.Ingredient.ID: ids})
	if err != nil {
		return nil, fmt.Errorf("ingredient_repo_build_query_failed: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "ingredients")
	}

	ingredients, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Ingredient])
	if err != nil {
		return nil, dberr.Wrap(err, "ingredients")
	}
	return ingredients, nil
}

func (repository *PostgresIngredientRepository) CreateIngredient(ctx context.Context, ingredient *Ingredient) error {
	query, args, err := psql.Insert(schema.Ingredient.Table).
		Columns(schema.Ingredient.Name, schema.Ingredient.AddPrice).
		Values(ingredient.Name, ingredient.AddPrice).
		Suffix("RETURNING " + schema.Ingredient.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("ingredient_repo_build_query_failed: %w", err)
	}

	err = repository.db.QueryRow(ctx, query, args...).Scan(&ingredient.ID)
	return dberr.Wrap(err, "ingredient")
}

func (repository *PostgresIngredientRepository) UpdateIngredient(ctx context.Context, ingredient *Ingredient) error {
	query, args, err := psql.Update(schema.Ingredient.Table).
		Set(schema.Ingredient.Name, ingredient.Name).
		Set(schema.Ingredient.AddPrice, ingredient.AddPrice).
		Where(sq.Eq{schema.Ingredient.ID: ingredient.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ingredient_repo_build_query_failed: %w", err)
	}

	tag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "ingredient")
	}
	if tag.RowsAffected() == 0 {
		return ingredientNotFound(ingredient.ID)
	}
	return nil
}

func (repository *PostgresIngredientRepository) DeleteIngredient(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(schema.Ingredient.Table).
		Where(sq.Eq{schema.Ingredient.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ingredient_repo_build_query_failed: %w", err)
	}

	tag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "ingredient")
	}
	if tag.RowsAffected() == 0 {
		return ingredientNotFound(id)
	}
	return nil
}

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

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresPizzaRepository implements [PizzaRepository] using pgx.
type PostgresPizzaRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPizzaRepository creates a new PostgreSQL [PizzaRepository].
func NewPostgresPizzaRepository(db *pgxpool.Pool) *PostgresPizzaRepository {
	return &PostgresPizzaRepository{db: db}
}

func pizzaNotFound(id int64) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("Unable to find pizza with id %d", id))
}

// # Query Builders

func buildSelectPizzasQuery(where sq.Sqlizer) (string, []any, error) {
	query := psql.Select(schema.Pizza.Columns()...).
		From(schema.Pizza.Table).
		OrderBy(schema.Pizza.ID + " ASC")
	if where != nil {
		query = query.Where(where)
	}
	return query.ToSql()
}

func buildSelectPizzaIngredientsQuery(pizzaIDs []int64) (string, []any, error) {
	return psql.Select(
		schema.Qualify(schema.IngredientOnPizza.Table, schema.IngredientOnPizza.PizzaID),
		schema.Qualify(schema.Ingredient.Table, schema.Ingredient.ID),
		schema.Qualify(schema.Ingredient.Table, schema.Ingredient.Name),
		schema.Qualify(schema.Ingredient.Table, schema.Ingredient.AddPrice),
	).
		From(schema.Ingredient.Table).
		Join(fmt.Sprintf("%s ON %s = %s",
			schema.IngredientOnPizza.Table,
			schema.Qualify(schema.IngredientOnPizza.Table, schema.IngredientOnPizza.IngredientID),
			schema.Qualify(schema.Ingredient.Table, schema.Ingredient.ID),
		)).
		Where(sq.Eq{schema.Qualify(schema.IngredientOnPizza.Table, schema.IngredientOnPizza.PizzaID): pizzaIDs}).
		OrderBy(schema.Qualify(schema.Ingredient.Table, schema.Ingredient.ID)).
		ToSql()
}

func buildInsertPizzaQuery(p *Pizza) (string, []any, error) {
	return psql.Insert(schema.Pizza.Table).
		Columns(schema.Pizza.Name, schema.Pizza.Weight, schema.Pizza.Price, schema.Pizza.Description, schema.Pizza.Image).
		Values(p.Name, p.Weight, p.Price, p.Description, p.Image).
		Suffix("RETURNING " + schema.Pizza.ID).
		ToSql()
}

func buildUpdatePizzaQuery(p *Pizza) (string, []any, error) {
	return psql.Update(schema.Pizza.Table).
		Set(schema.Pizza.Name, p.Name).
		Set(schema.Pizza.Weight, p.Weight).
		Set(schema.Pizza.Price, p.Price).
		Set(schema.Pizza.Description, p.Description).
		Set(schema.Pizza.Image, p.Image).
		Where(sq.Eq{schema.Pizza.ID: p.ID}).
		ToSql()
}

func buildLinkIngredientsQuery(pizzaID int64, ingredientIDs []int64) (string, []any, error) {
	insert := psql.Insert(schema.IngredientOnPizza.Table).
		Columns(schema.IngredientOnPizza.PizzaID, schema.IngredientOnPizza.IngredientID)
	for _, ingredientID := range ingredientIDs {
		insert = insert.Values(pizzaID, ingredientID)
	}
	return insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
}

// # Reads

// ListPizzas returns every pizza with its ingredients, ordered by ID.
func (repository *PostgresPizzaRepository) ListPizzas(ctx context.Context) ([]*Pizza, error) {
	query, args, err := buildSelectPizzasQuery(nil)
	if err != nil {
		return nil, fmt.Errorf("pizza_repo_build_query_failed: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "pizzas")
	}

	pizzas, err := pgx.CollectRows(rows, scanPizza)
	if err != nil {
		return nil, dberr.Wrap(err, "pizzas")
	}

	if err := repository.attachIngredients(ctx, pizzas); err != nil {
		return nil, err
	}

	return pizzas, nil
}

// GetPizzaByID returns one pizza with its ingredients.
func (repository *PostgresPizzaRepository) GetPizzaByID(ctx context.Context, id int64) (*Pizza, error) {
	query, args, err := buildSelectPizzasQuery(sq.Eq{schema.Pizza.ID: id})
	if err != nil {
		return nil, fmt.Errorf("pizza_repo_build_query_failed: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "pizza")
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanPizza)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pizzaNotFound(id).WithCause(err)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "pizza")
	}

	if err := repository.attachIngredients(ctx, []*Pizza{p}); err != nil {
		return nil, err
	}

	return p, nil
}

func scanPizza(row pgx.CollectableRow) (*Pizza, error) {
	p := &Pizza{}
	err := row.Scan(&p.ID, &p.Name, &p.Weight, &p.Price, &p.Description, &p.Image)
	return p, err
}

// attachIngredients loads the ingredients of all pizzas in a single query.
func (repository *PostgresPizzaRepository) attachIngredients(ctx context.Context, pizzas []*Pizza) error {
	if len(pizzas) == 0 {
		return nil
	}

	byID := make(map[int64]*Pizza, len(pizzas))
	ids := make([]int64, 0, len(pizzas))
	for _, p := range pizzas {
		p.Ingredients = []Ingredient{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query, args, err := buildSelectPizzaIngredientsQuery(ids)
	if err != nil {
		return fmt.Errorf("pizza_repo_build_query_failed: %w", err)
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "pizza ingredients")
	}
	defer rows.Close()

	for rows.Next() {
		var pizzaID int64
		var ingredient Ingredient
		if err := rows.Scan(&pizzaID, &ingredient.ID, &ingredient.Name, &ingredient.AddPrice); err != nil {
			return dberr.Wrap(err, "pizza ingredients")
		}
		if p, ok := byID[pizzaID]; ok {
			p.Ingredients = append(p.Ingredients, ingredient)
		}
	}

	return dberr.Wrap(rows.Err(), "pizza ingredients")
}

// # Writes

// CreatePizza inserts the pizza and links its ingredients in one transaction.
func (repository *PostgresPizzaRepository) CreatePizza(ctx context.Context, p *Pizza) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		query, args, err := buildInsertPizzaQuery(p)
		if err != nil {
			return fmt.Errorf("pizza_repo_build_query_failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
			return err
		}

		return linkIngredients(ctx, tx, p)
	})

	return wrapWriteError(err)
}

// UpdatePizza overwrites the pizza and replaces its ingredient set.
func (repository *PostgresPizzaRepository) UpdatePizza(ctx context.Context, p *Pizza) error {
	err := pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		query, args, err := buildUpdatePizzaQuery(p)
		if err != nil {
			return fmt.Errorf("pizza_repo_build_query_failed: %w", err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pizzaNotFound(p.ID)
		}

		query, args, err = psql.Delete(schema.IngredientOnPizza.Table).
			Where(sq.Eq{schema.IngredientOnPizza.PizzaID: p.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("pizza_repo_build_query_failed: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}

		return linkIngredients(ctx, tx, p)
	})

	return wrapWriteError(err)
}

// DeletePizza removes the pizza. Its ingredient links cascade.
func (repository *PostgresPizzaRepository) DeletePizza(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(schema.Pizza.Table).
		Where(sq.Eq{schema.Pizza.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("pizza_repo_build_query_failed: %w", err)
	}

	tag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "pizza")
	}
	if tag.RowsAffected() == 0 {
		return pizzaNotFound(id)
	}

	return nil
}

func linkIngredients(ctx context.Context, tx pgx.Tx, p *Pizza) error {
	ids := p.IngredientIDs()
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildLinkIngredientsQuery(p.ID, ids)
	if err != nil {
		return fmt.Errorf("pizza_repo_build_query_failed: %w", err)
	}

	_, err = tx.Exec(ctx, query, args...)
	return err
}

func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if apperr.As(err) != nil {
		return err
	}
	if dberr.IsForeignKeyViolation(err) {
		return apperr.ValidationFailed(MsgInvalidIngredient).WithCause(err)
	}
	return dberr.Wrap(err, "pizza")
}

// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

import "context"

// PizzaRepository defines the data access contract for pizzas.
//
// Returned pizzas always carry their ingredients. Every lookup by ID returns
// [apperr.NotFound] when the pizza does not exist.
type PizzaRepository interface {
	ListPizzas(ctx context.Context) ([]*Pizza, error)
	GetPizzaByID(ctx context.Context, id int64) (*Pizza, error)

	// CreatePizza inserts the pizza and its ingredient links, setting p.ID.
	CreatePizza(ctx context.Context, p *Pizza) error

	// UpdatePizza replaces every field and the ingredient set of p.ID.
	UpdatePizza(ctx context.Context, p *Pizza) error

	DeletePizza(ctx context.Context, id int64) error
}

// IngredientRepository defines the data access contract for ingredients.
type IngredientRepository interface {
	ListIngredients(ctx context.Context) ([]*Ingredient, error)
	GetIngredientByID(ctx context.Context, id int64) (*Ingredient, error)

	// FindIngredientsByIDs returns the ingredients that exist among ids.
	// Unknown IDs are silently skipped.
	FindIngredientsByIDs(ctx context.Context, ids []int64) ([]Ingredient, error)

	CreateIngredient(ctx context.Context, ingredient *Ingredient) error
	UpdateIngredient(ctx context.Context, ingredient *Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error
}

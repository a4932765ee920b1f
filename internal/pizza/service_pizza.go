// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/pkg/slice"
)

// PizzaService implements the menu use cases for pizzas.
type PizzaService struct {
	pizzas      PizzaRepository
	ingredients IngredientRepository
	logger      *slog.Logger
}

// NewPizzaService constructs a new [PizzaService].
func NewPizzaService(pizzas PizzaRepository, ingredients IngredientRepository, logger *slog.Logger) *PizzaService {
	return &PizzaService{
		pizzas:      pizzas,
		ingredients: ingredients,
		logger:      logger,
	}
}

// ListPizzas returns the whole menu. The result is never nil.
func (service *PizzaService) ListPizzas(ctx context.Context) ([]*Pizza, error) {
	pizzas, err := service.pizzas.ListPizzas(ctx)
	if err != nil {
		return nil, err
	}
	if pizzas == nil {
		pizzas = []*Pizza{}
	}
	return pizzas, nil
}

func (service *PizzaService) GetPizza(ctx context.Context, id int64) (*Pizza, error) {
	return service.pizzas.GetPizzaByID(ctx, id)
}

// CreatePizza persists a new pizza and returns it with resolved ingredients.
func (service *PizzaService) CreatePizza(ctx context.Context, p *Pizza) (*Pizza, error) {
	if err := service.resolveIngredients(ctx, p); err != nil {
		return nil, err
	}

	if err := service.pizzas.CreatePizza(ctx, p); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "pizza_created", "pizza_id", p.ID, "ingredients", len(p.Ingredients))
	return p, nil
}

// UpdatePizza overwrites the pizza with the given ID.
func (service *PizzaService) UpdatePizza(ctx context.Context, p *Pizza) (*Pizza, error) {
	if err := service.resolveIngredients(ctx, p); err != nil {
		return nil, err
	}

	if err := service.pizzas.UpdatePizza(ctx, p); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "pizza_updated", "pizza_id", p.ID)
	return p, nil
}

func (service *PizzaService) DeletePizza(ctx context.Context, id int64) error {
	if err := service.pizzas.DeletePizza(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "pizza_deleted", "pizza_id", id)
	return nil
}

// resolveIngredients replaces the requested ingredient references with the
// stored ingredients. Any unknown ID fails the whole request.
func (service *PizzaService) resolveIngredients(ctx context.Context, p *Pizza) error {
	ids := p.IngredientIDs()

	found, err := service.ingredients.FindIngredientsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("pizza_service_resolve_ingredients_failed: %w", err)
	}

	known := make(map[int64]Ingredient, len(found))
	for _, ingredient := range found {
		known[ingredient.ID] = ingredient
	}

	missing := slice.Filter(ids, func(id int64) bool {
		_, ok := known[id]
		return !ok
	})
	if len(missing) > 0 {
		service.logger.WarnContext(ctx, "pizza_unknown_ingredients", "ingredient_ids", missing)
		return apperr.ValidationFailed(MsgInvalidIngredient)
	}

	p.Ingredients = slice.Map(ids, func(id int64) Ingredient { return known[id] })
	return nil
}

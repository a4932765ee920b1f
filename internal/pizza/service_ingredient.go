// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pizzanoir/internal/platform/validate"
)

// IngredientService implements the menu use cases for ingredients.
type IngredientService struct {
	repo   IngredientRepository
	logger *slog.Logger
}

// NewIngredientService constructs a new [IngredientService].
func NewIngredientService(repo IngredientRepository, logger *slog.Logger) *IngredientService {
	return &IngredientService{
		repo:   repo,
		logger: logger,
	}
}

func (service *IngredientService) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	ingredients, err := service.repo.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []*Ingredient{}
	}
	return ingredients, nil
}

func (service *IngredientService) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	return service.repo.GetIngredientByID(ctx, id)
}

func (service *IngredientService) CreateIngredient(ctx context.Context, ingredient *Ingredient) (*Ingredient, error) {
	if err := service.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "ingredient_created", "ingredient_id", ingredient.ID)
	return ingredient, nil
}

// UpdateIngredient applies patch to the stored ingredient and saves the result.
//
// The merged ingredient is validated again, so a patch cannot leave an
// ingredient with an empty name or a negative price.
func (service *IngredientService) UpdateIngredient(ctx context.Context, id int64, patch IngredientPatch) (*Ingredient, error) {
	ingredient, err := service.repo.GetIngredientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(ingredient)

	if err := validateIngredient(ingredient); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "ingredient_updated", "ingredient_id", id)
	return ingredient, nil
}

func (service *IngredientService) DeleteIngredient(ctx context.Context, id int64) error {
	if err := service.repo.DeleteIngredient(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "ingredient_deleted", "ingredient_id", id)
	return nil
}

func validateIngredient(ingredient *Ingredient) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, ingredient.Name).
		MaxLen(FieldName, ingredient.Name, IngredientNameMaxLength).
		Min(FieldAddPrice, int64(ingredient.AddPrice), 0)
	return validator.Err()
}

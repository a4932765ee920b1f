// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pizza manages the menu: pizzas and the ingredients they are made of.

# Rules

  - Every pizza has at least one ingredient.
  - Ingredients are shared between pizzas; deleting one removes it from every pizza.
  - An ingredient ID that does not exist is a client error ("Invalid Ingredient ID").
*/
package pizza

// Ingredient is a topping that can be put on a pizza for an extra charge.
type Ingredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	AddPrice int    `json:"addprice"`
}

// Pizza is a menu item.
type Pizza struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Weight      int          `json:"weight"`
	Price       int          `json:"price"`
	Description *string      `json:"description"`
	Image       string       `json:"image"`
	Ingredients []Ingredient `json:"ingredients"`
}

// IngredientIDs returns the distinct ingredient IDs in the order first seen.
func (p *Pizza) IngredientIDs() []int64 {
	seen := make(map[int64]struct{}, len(p.Ingredients))
	ids := make([]int64, 0, len(p.Ingredients))
	for _, ingredient := range p.Ingredients {
		if _, ok := seen[ingredient.ID]; ok {
			continue
		}
		seen[ingredient.ID] = struct{}{}
		ids = append(ids, ingredient.ID)
	}
	return ids
}

// IngredientPatch carries the fields of a partial ingredient update.
// Nil fields are left unchanged.
type IngredientPatch struct {
	Name     *string
	AddPrice *int
}

// Apply copies the non-nil fields onto ingredient.
func (patch IngredientPatch) Apply(ingredient *Ingredient) {
	if patch.Name != nil {
		ingredient.Name = *patch.Name
	}
	if patch.AddPrice != nil {
		ingredient.AddPrice = *patch.AddPrice
	}
}

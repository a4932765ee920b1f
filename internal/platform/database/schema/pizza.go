// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PizzaTable represents the 'pizza' table
type PizzaTable struct {
	Table       string
	ID          string
	Name        string
	Weight      string
	Price       string
	Description string
	Image       string
}

// Pizza is the schema definition for pizza
var Pizza = PizzaTable{
	Table:       "pizza",
	ID:          "id",
	Name:        "name",
	Weight:      "weight",
	Price:       "price",
	Description: "description",
	Image:       "image",
}

// Columns returns all standard column names
func (t PizzaTable) Columns() []string {
	return []string{t.ID, t.Name, t.Weight, t.Price, t.Description, t.Image}
}

// IngredientTable represents the 'pizza_ingredient' table
type IngredientTable struct {
	Table    string
	ID       string
	Name     string
	AddPrice string
}

// Ingredient is the schema definition for pizza_ingredient
var Ingredient = IngredientTable{
	Table:    "pizza_ingredient",
	ID:       "id",
	Name:     "name",
	AddPrice: "addprice",
}

// Columns returns all standard column names
func (t IngredientTable) Columns() []string {
	return []string{t.ID, t.Name, t.AddPrice}
}

// IngredientOnPizzaTable represents the 'ingredient_on_pizza' join table
type IngredientOnPizzaTable struct {
	Table        string
	PizzaID      string
	IngredientID string
}

// IngredientOnPizza is the schema definition for ingredient_on_pizza
var IngredientOnPizza = IngredientOnPizzaTable{
	Table:        "ingredient_on_pizza",
	PizzaID:      "pizzaid",
	IngredientID: "ingredientid",
}

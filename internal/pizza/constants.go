// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

// # Response Subjects

const (
	SubjectPizzaGetAll  = "Pizza Get All"
	SubjectPizzaGetByID = "Pizza Get By Id"
	SubjectPizzaCreate  = "Pizza Create"
	SubjectPizzaUpdate  = "Pizza Update"
	SubjectPizzaDelete  = "Pizza Delete"

	SubjectIngredientGetAll  = "Ingredient Get All"
	SubjectIngredientGetByID = "Ingredient Get By Id"
	SubjectIngredientCreate  = "Ingredient Create"
	SubjectIngredientUpdate  = "Ingredient Update"
	SubjectIngredientDelete  = "Ingredient Delete"
)

// # Messages

const (
	MsgPizzaDeleted      = "Successfully deleted pizza"
	MsgIngredientDeleted = "Successfully deleted ingredient"
	MsgInvalidIngredient = "Invalid Ingredient ID"
)

// # Request Fields

const (
	FieldName        = "name"
	FieldWeight      = "weight"
	FieldPrice       = "price"
	FieldImage       = "image"
	FieldIngredients = "ingredients"
	FieldAddPrice    = "addprice"
)

// # Field Limits

const (
	PizzaNameMaxLength      = 100
	IngredientNameMaxLength = 40
)

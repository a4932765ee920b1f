// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/pizzanoir/internal/platform/request"
	"github.com/taibuivan/pizzanoir/internal/platform/respond"
	"github.com/taibuivan/pizzanoir/internal/platform/validate"
	"github.com/taibuivan/pizzanoir/pkg/pointer"
)

// IngredientHandler implements the ingredient HTTP endpoints.
type IngredientHandler struct {
	service *IngredientService
}

// NewIngredientHandler constructs a new [IngredientHandler].
func NewIngredientHandler(service *IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// RegisterRoutes mounts the ingredient endpoints on router.
func (handler *IngredientHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listIngredients)
	router.Post("/", handler.createIngredient)
	router.Get("/{id}", handler.getIngredient)
	router.Put("/{id}", handler.updateIngredient)
	router.Delete("/{id}", handler.deleteIngredient)
}

// ingredientRequest serves both create and update. On update a nil field
// keeps the stored value.
type ingredientRequest struct {
	Name     *string `json:"name"`
	AddPrice *int    `json:"addprice"`
}

func (input *ingredientRequest) patch() IngredientPatch {
	patch := IngredientPatch{AddPrice: input.AddPrice}
	if input.Name != nil {
		patch.Name = pointer.To(strings.TrimSpace(*input.Name))
	}
	return patch
}

func (handler *IngredientHandler) listIngredients(writer http.ResponseWriter, request *http.Request) {
	ingredients, err := handler.service.ListIngredients(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectIngredientGetAll, ingredients)
}

func (handler *IngredientHandler) getIngredient(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredient, err := handler.service.GetIngredient(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectIngredientGetByID, ingredient)
}

/*
POST /api/ingredient

Both name and addprice are required.

Response:
  - 201: Ingredient
  - 400: ValidationFailed
*/
func (handler *IngredientHandler) createIngredient(writer http.ResponseWriter, request *http.Request) {
	var input ingredientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldName, input.Name == nil, "This field is required").
		Custom(FieldAddPrice, input.AddPrice == nil, "This field is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredient := &Ingredient{}
	input.patch().Apply(ingredient)

	if err := validateIngredient(ingredient); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateIngredient(request.Context(), ingredient)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, SubjectIngredientCreate, created)
}

/*
PUT /api/ingredient/{id}

Partial update: omitted fields keep their stored value.

Response:
  - 200: Ingredient
  - 400: ValidationFailed
  - 404: NotFound
*/
func (handler *IngredientHandler) updateIngredient(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ingredientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredient, err := handler.service.UpdateIngredient(request.Context(), id, input.patch())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectIngredientUpdate, ingredient)
}

func (handler *IngredientHandler) deleteIngredient(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteIngredient(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectIngredientDelete, MsgIngredientDeleted)
}

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
	"github.com/taibuivan/pizzanoir/pkg/slice"
)

// PizzaHandler implements the pizza HTTP endpoints.
type PizzaHandler struct {
	service *PizzaService
}

// NewPizzaHandler constructs a new [PizzaHandler].
func NewPizzaHandler(service *PizzaService) *PizzaHandler {
	return &PizzaHandler{service: service}
}

// RegisterRoutes mounts the pizza endpoints on router.
func (handler *PizzaHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPizzas)
	router.Post("/", handler.createPizza)
	router.Get("/{id}", handler.getPizza)
	router.Put("/{id}", handler.updatePizza)
	router.Delete("/{id}", handler.deletePizza)
}

type ingredientRef struct {
	ID int64 `json:"id"`
}

type pizzaRequest struct {
	Name        string          `json:"name"`
	Weight      int             `json:"weight"`
	Price       int             `json:"price"`
	Description *string         `json:"description"`
	Image       string          `json:"image"`
	Ingredients []ingredientRef `json:"ingredients"`
}

func (input *pizzaRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, PizzaNameMaxLength).
		Min(FieldWeight, int64(input.Weight), 1).
		Min(FieldPrice, int64(input.Price), 1).
		Required(FieldImage, input.Image).
		NotEmpty(FieldIngredients, len(input.Ingredients))

	for _, ref := range input.Ingredients {
		validator.Custom(FieldIngredients, ref.ID < 1, "Ingredient ID must be a positive number")
	}

	return validator.Err()
}

func (input *pizzaRequest) toPizza(id int64) *Pizza {
	return &Pizza{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Weight:      input.Weight,
		Price:       input.Price,
		Description: input.Description,
		Image:       strings.TrimSpace(input.Image),
		Ingredients: slice.Map(input.Ingredients, func(ref ingredientRef) Ingredient { return Ingredient{ID: ref.ID} }),
	}
}

/*
GET /api/pizza

Response:
  - 200: []Pizza
*/
func (handler *PizzaHandler) listPizzas(writer http.ResponseWriter, request *http.Request) {
	pizzas, err := handler.service.ListPizzas(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectPizzaGetAll, pizzas)
}

/*
GET /api/pizza/{id}

Response:
  - 200: Pizza
  - 400: ValidationFailed (non-positive or non-numeric ID)
  - 404: NotFound
*/
func (handler *PizzaHandler) getPizza(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetPizza(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectPizzaGetByID, p)
}

/*
POST /api/pizza

Response:
  - 201: Pizza
  - 400: ValidationFailed (bad body or unknown ingredient ID)
*/
func (handler *PizzaHandler) createPizza(writer http.ResponseWriter, request *http.Request) {
	var input pizzaRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.CreatePizza(request.Context(), input.toPizza(0))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, SubjectPizzaCreate, p)
}

/*
PUT /api/pizza/{id}

Replaces every field and the ingredient set.

Response:
  - 200: Pizza
  - 400: ValidationFailed
  - 404: NotFound
*/
func (handler *PizzaHandler) updatePizza(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input pizzaRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.UpdatePizza(request.Context(), input.toPizza(id))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectPizzaUpdate, p)
}

/*
DELETE /api/pizza/{id}

Response:
  - 200: "Successfully deleted pizza"
  - 404: NotFound
*/
func (handler *PizzaHandler) deletePizza(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePizza(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectPizzaDelete, MsgPizzaDeleted)
}

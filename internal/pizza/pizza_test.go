// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pizza

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/respond"
)

// # In-memory Repositories

type memoryIngredients struct {
	items  map[int64]*Ingredient
	nextID int64
}

func newMemoryIngredients(items ...Ingredient) *memoryIngredients {
	m := &memoryIngredients{items: map[int64]*Ingredient{}}
	for _, item := range items {
		item := item
		m.items[item.ID] = &item
		if item.ID > m.nextID {
			m.nextID = item.ID
		}
	}
	return m
}

func (m *memoryIngredients) ListIngredients(context.Context) ([]*Ingredient, error) {
	var out []*Ingredient
	for id := int64(1); id <= m.nextID; id++ {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryIngredients) GetIngredientByID(_ context.Context, id int64) (*Ingredient, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, ingredientNotFound(id)
	}
	copied := *item
	return &copied, nil
}

func (m *memoryIngredients) FindIngredientsByIDs(_ context.Context, ids []int64) ([]Ingredient, error) {
	out := []Ingredient{}
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memoryIngredients) CreateIngredient(_ context.Context, ingredient *Ingredient) error {
	m.nextID++
	ingredient.ID = m.nextID
	copied := *ingredient
	m.items[ingredient.ID] = &copied
	return nil
}

func (m *memoryIngredients) UpdateIngredient(_ context.Context, ingredient *Ingredient) error {
	if _, ok := m.items[ingredient.ID]; !ok {
		return ingredientNotFound(ingredient.ID)
	}
	copied := *ingredient
	m.items[ingredient.ID] = &copied
	return nil
}

func (m *memoryIngredients) DeleteIngredient(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return ingredientNotFound(id)
	}
	delete(m.items, id)
	return nil
}

type memoryPizzas struct {
	items  map[int64]*Pizza
	nextID int64
	calls  int
}

func newMemoryPizzas() *memoryPizzas {
	return &memoryPizzas{items: map[int64]*Pizza{}}
}

func (m *memoryPizzas) ListPizzas(context.Context) ([]*Pizza, error) {
	m.calls++
	var out []*Pizza
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryPizzas) GetPizzaByID(_ context.Context, id int64) (*Pizza, error) {
	m.calls++
	p, ok := m.items[id]
	if !ok {
		return nil, pizzaNotFound(id)
	}
	return p, nil
}

func (m *memoryPizzas) CreatePizza(_ context.Context, p *Pizza) error {
	m.calls++
	m.nextID++
	p.ID = m.nextID
	m.items[p.ID] = p
	return nil
}

func (m *memoryPizzas) UpdatePizza(_ context.Context, p *Pizza) error {
	m.calls++
	if _, ok := m.items[p.ID]; !ok {
		return pizzaNotFound(p.ID)
	}
	m.items[p.ID] = p
	return nil
}

func (m *memoryPizzas) DeletePizza(_ context.Context, id int64) error {
	m.calls++
	if _, ok := m.items[id]; !ok {
		return pizzaNotFound(id)
	}
	delete(m.items, id)
	return nil
}

// # Helpers

func newTestRouter(pizzas PizzaRepository, ingredients IngredientRepository) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Route("/api/pizza", NewPizzaHandler(NewPizzaService(pizzas, ingredients, logger)).RegisterRoutes)
	router.Route("/api/ingredient", NewIngredientHandler(NewIngredientService(ingredients, logger)).RegisterRoutes)
	return router
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, reader))
	return recorder
}

func decodeData[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Subject string `json:"subject"`
		Data    T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

const margherita = `{"name":"Margherita","weight":450,"price":590,"image":"margherita.png","ingredients":[{"id":1},{"id":2},{"id":1}]}`

// # Pizza Handler

func TestPizzaHandler_PathID(t *testing.T) {
	pizzas := newMemoryPizzas()
	router := newTestRouter(pizzas, newMemoryIngredients())

	recorder := serve(router, http.MethodGet, "/api/pizza/-1", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, apperr.KindValidationFailed, decodeError(t, recorder).Exception)
	assert.Zero(t, pizzas.calls, "invalid ID must not reach the repository")

	recorder = serve(router, http.MethodGet, "/api/pizza/999999", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, apperr.KindNotFound, envelope.Exception)
	assert.Equal(t, "Unable to find pizza with id 999999", envelope.Message)
	assert.Equal(t, 1, pizzas.calls)
}

func TestPizzaHandler_CreateAndGet(t *testing.T) {
	ingredients := newMemoryIngredients(
		Ingredient{ID: 1, Name: "Mozzarella", AddPrice: 60},
		Ingredient{ID: 2, Name: "Basil", AddPrice: 20},
	)
	router := newTestRouter(newMemoryPizzas(), ingredients)

	recorder := serve(router, http.MethodPost, "/api/pizza", margherita)
	require.Equal(t, http.StatusCreated, recorder.Code)

	created := decodeData[Pizza](t, recorder)
	assert.Equal(t, int64(1), created.ID)
	assert.Nil(t, created.Description)
	require.Len(t, created.Ingredients, 2, "duplicate ingredient references collapse")
	assert.Equal(t, "Mozzarella", created.Ingredients[0].Name)
	assert.Equal(t, 20, created.Ingredients[1].AddPrice)

	recorder = serve(router, http.MethodGet, "/api/pizza/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"subject":"Pizza Get By Id"`)

	recorder = serve(router, http.MethodGet, "/api/pizza", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decodeData[[]Pizza](t, recorder), 1)
}

func TestPizzaHandler_ListEmpty(t *testing.T) {
	recorder := serve(newTestRouter(newMemoryPizzas(), newMemoryIngredients()), http.MethodGet, "/api/pizza", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data":[]`)
}

func TestPizzaHandler_CreateValidation(t *testing.T) {
	ingredients := newMemoryIngredients(Ingredient{ID: 1, Name: "Mozzarella", AddPrice: 60})

	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantFields  []string
	}{
		{
			name:        "malformed json",
			body:        `{"name":`,
			wantMessage: "Invalid JSON payload",
		},
		{
			name:        "zero weight and price",
			body:        `{"name":"Diavola","weight":0,"price":0,"image":"d.png","ingredients":[{"id":1}]}`,
			wantMessage: "Validation failed",
			wantFields:  []string{FieldWeight, FieldPrice},
		},
		{
			name:        "no ingredients",
			body:        `{"name":"Diavola","weight":400,"price":500,"image":"d.png","ingredients":[]}`,
			wantMessage: "Validation failed",
			wantFields:  []string{FieldIngredients},
		},
		{
			name:        "name too long and image missing",
			body:        `{"name":"` + strings.Repeat("x", PizzaNameMaxLength+1) + `","weight":400,"price":500,"ingredients":[{"id":1}]}`,
			wantMessage: "Validation failed",
			wantFields:  []string{FieldName, FieldImage},
		},
		{
			name:        "unknown ingredient",
			body:        `{"name":"Diavola","weight":400,"price":500,"image":"d.png","ingredients":[{"id":1},{"id":42}]}`,
			wantMessage: MsgInvalidIngredient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pizzas := newMemoryPizzas()
			recorder := serve(newTestRouter(pizzas, ingredients), http.MethodPost, "/api/pizza", tt.body)

			require.Equal(t, http.StatusBadRequest, recorder.Code)
			envelope := decodeError(t, recorder)
			assert.Equal(t, apperr.KindValidationFailed, envelope.Exception)
			assert.Equal(t, tt.wantMessage, envelope.Message)
			fields := make([]string, 0, len(envelope.Details))
			for _, detail := range envelope.Details {
				fields = append(fields, detail.Field)
			}
			for _, field := range tt.wantFields {
				assert.Contains(t, fields, field)
			}
			assert.Empty(t, pizzas.items)
		})
	}
}

func TestPizzaHandler_UpdateAndDelete(t *testing.T) {
	ingredients := newMemoryIngredients(
		Ingredient{ID: 1, Name: "Mozzarella", AddPrice: 60},
		Ingredient{ID: 2, Name: "Salami", AddPrice: 90},
	)
	router := newTestRouter(newMemoryPizzas(), ingredients)
	require.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/api/pizza", margherita).Code)

	body := `{"name":"Diavola","weight":500,"price":690,"description":"Spicy","image":"d.png","ingredients":[{"id":2}]}`

	recorder := serve(router, http.MethodPut, "/api/pizza/1", body)
	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeData[Pizza](t, recorder)
	assert.Equal(t, "Diavola", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Spicy", *updated.Description)
	assert.Equal(t, []Ingredient{{ID: 2, Name: "Salami", AddPrice: 90}}, updated.Ingredients)

	recorder = serve(router, http.MethodPut, "/api/pizza/7", body)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = serve(router, http.MethodDelete, "/api/pizza/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, MsgPizzaDeleted, decodeData[string](t, recorder))

	recorder = serve(router, http.MethodDelete, "/api/pizza/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// # Ingredient Handler

func TestIngredientHandler_Create(t *testing.T) {
	ingredients := newMemoryIngredients()
	router := newTestRouter(newMemoryPizzas(), ingredients)

	recorder := serve(router, http.MethodPost, "/api/ingredient", `{"name":" Olives ","addprice":0}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeData[Ingredient](t, recorder)
	assert.Equal(t, Ingredient{ID: 1, Name: "Olives", AddPrice: 0}, created)

	tests := []struct {
		name string
		body string
	}{
		{"missing addprice", `{"name":"Olives"}`},
		{"missing name", `{"addprice":10}`},
		{"blank name", `{"name":"  ","addprice":10}`},
		{"negative addprice", `{"name":"Olives","addprice":-1}`},
		{"name too long", `{"name":"` + strings.Repeat("o", IngredientNameMaxLength+1) + `","addprice":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, http.MethodPost, "/api/ingredient", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, apperr.KindValidationFailed, decodeError(t, recorder).Exception)
		})
	}

	assert.Len(t, ingredients.items, 1)
}

func TestIngredientHandler_PartialUpdate(t *testing.T) {
	ingredients := newMemoryIngredients(Ingredient{ID: 1, Name: "Mozzarella", AddPrice: 60})
	router := newTestRouter(newMemoryPizzas(), ingredients)

	recorder := serve(router, http.MethodPut, "/api/ingredient/1", `{"name":"Buffalo Mozzarella"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, Ingredient{ID: 1, Name: "Buffalo Mozzarella", AddPrice: 60}, decodeData[Ingredient](t, recorder))

	recorder = serve(router, http.MethodPut, "/api/ingredient/1", `{"addprice":75}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, Ingredient{ID: 1, Name: "Buffalo Mozzarella", AddPrice: 75}, *ingredients.items[1])

	recorder = serve(router, http.MethodPut, "/api/ingredient/1", `{"addprice":-5}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 75, ingredients.items[1].AddPrice, "rejected patch leaves the stored value")

	recorder = serve(router, http.MethodPut, "/api/ingredient/9", `{"addprice":5}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestIngredientHandler_GetAndDelete(t *testing.T) {
	router := newTestRouter(newMemoryPizzas(), newMemoryIngredients(Ingredient{ID: 1, Name: "Basil", AddPrice: 20}))

	recorder := serve(router, http.MethodGet, "/api/ingredient", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decodeData[[]Ingredient](t, recorder), 1)

	recorder = serve(router, http.MethodGet, "/api/ingredient/0", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(router, http.MethodDelete, "/api/ingredient/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, MsgIngredientDeleted, decodeData[string](t, recorder))

	recorder = serve(router, http.MethodGet, "/api/ingredient/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Unable to find ingredient with id 1", decodeError(t, recorder).Message)
}

// # Domain

func TestPizza_IngredientIDs(t *testing.T) {
	p := &Pizza{Ingredients: []Ingredient{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 2}}}
	assert.Equal(t, []int64{3, 1, 2}, p.IngredientIDs())
	assert.Empty(t, (&Pizza{}).IngredientIDs())
}

func TestWrapWriteError(t *testing.T) {
	assert.NoError(t, wrapWriteError(nil))

	notFound := pizzaNotFound(4)
	assert.Same(t, notFound, wrapWriteError(notFound))
}

// # Query Builders

func Test_buildSelectPizzasQuery(t *testing.T) {
	query, args, err := buildSelectPizzasQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, "select id, name, weight, price, description, image from pizza order by id asc", strings.ToLower(query))
	assert.Empty(t, args)

	query, args, err = buildSelectPizzaIngredientsQuery([]int64{1, 2})
	require.NoError(t, err)
	q := strings.ToLower(query)
	assert.Contains(t, q, "join ingredient_on_pizza on ingredient_on_pizza.ingredientid = pizza_ingredient.id")
	assert.Contains(t, q, "ingredient_on_pizza.pizzaid in ($1,$2)")
	assert.Equal(t, []any{int64(1), int64(2)}, args)
}

func Test_buildLinkIngredientsQuery(t *testing.T) {
	query, args, err := buildLinkIngredientsQuery(5, []int64{1, 3})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "insert into ingredient_on_pizza"))
	assert.Contains(t, q, "on conflict do nothing")
	assert.Equal(t, []any{int64(5), int64(1), int64(5), int64(3)}, args)
}

func Test_buildUpdatePizzaQuery(t *testing.T) {
	description := "Spicy"
	query, args, err := buildUpdatePizzaQuery(&Pizza{ID: 9, Name: "Diavola", Weight: 500, Price: 690, Description: &description, Image: "d.png"})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "update pizza set name = $1"))
	assert.True(t, strings.HasSuffix(q, "where id = $6"))
	assert.Len(t, args, 6)
	assert.Equal(t, int64(9), args[5])
}

func Test_buildSelectIngredientsQuery(t *testing.T) {
	query, args, err := buildSelectIngredientsQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, "select id, name, addprice from pizza_ingredient order by id asc", strings.ToLower(query))
	assert.Empty(t, args)
}

// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/pizzanoir/internal/platform/request"
	"github.com/taibuivan/pizzanoir/internal/platform/respond"
)

const (
	SubjectGetAll  = "Role Get All"
	SubjectGetByID = "Role Get By Id"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listRoles)
	router.Get("/{id}", handler.getRole)
}

func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.service.ListRoles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectGetAll, roles)
}

func (handler *Handler) getRole(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.GetRole(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, SubjectGetByID, r)
}

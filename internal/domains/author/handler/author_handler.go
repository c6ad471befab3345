package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/service"
	"catalog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the author endpoints on rg.
func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	{
		authors.GET("", h.GetAll)
		authors.POST("", h.Create)
		authors.GET("/search", h.SearchByName)
		authors.GET("/with-min-books", h.GetWithMinimumBooks)
		authors.GET("/email/:email", h.GetByEmail)
		authors.GET("/:id", h.GetByID)
		authors.PUT("/:id", h.Update)
		authors.DELETE("/:id", h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, author)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /authors/email/:email
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByEmail(c *gin.Context) {
	author, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, author)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.AuthorRequest
	if !response.BindJSON(c, &req) {
		return
	}

	author, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, author)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req model.AuthorRequest
	if !response.BindJSON(c, &req) {
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, author)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /authors/search?name=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) SearchByName(c *gin.Context) {
	authors, err := h.service.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// GetWithMinimumBooks - GET /authors/with-min-books?minBooks=1
func (h *AuthorHandler) GetWithMinimumBooks(c *gin.Context) {
	minBooks, ok := response.QueryInt(c, "minBooks", 1)
	if !ok {
		return
	}

	authors, err := h.service.GetWithMinimumBooks(c.Request.Context(), minBooks)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

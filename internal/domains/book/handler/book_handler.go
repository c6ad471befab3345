package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/service"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the book endpoints on rg.
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", h.GetAll)
		books.POST("", h.Create)
		books.GET("/search", h.SearchByTitle)
		books.GET("/category/:category", h.GetByCategory)
		books.GET("/status/:status", h.GetByStatus)
		books.GET("/author/:authorId", h.GetByAuthor)
		books.GET("/isbn/:isbn", h.GetByISBN)
		books.GET("/:id", h.GetByID)
		books.PUT("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
		books.PUT("/:id/borrow", h.Borrow)
		books.PUT("/:id/return", h.Return)
	}
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

// GetAll - GET /books
func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.service.GetAll(c.Request.Context())
	h.list(c, books, err)
}

// GetByID - GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	h.one(c, book, err)
}

// GetByISBN - GET /books/isbn/:isbn
func (h *BookHandler) GetByISBN(c *gin.Context) {
	book, err := h.service.GetByISBN(c.Request.Context(), c.Param("isbn"))
	h.one(c, book, err)
}

// GetByCategory - GET /books/category/:category
func (h *BookHandler) GetByCategory(c *gin.Context) {
	category, ok := model.ParseCategory(c.Param("category"))
	if !ok {
		response.Fail(c, apperror.InvalidParam("category", "must be one of "+joinTags(model.Categories())))
		return
	}

	books, err := h.service.GetByCategory(c.Request.Context(), category)
	h.list(c, books, err)
}

// GetByStatus - GET /books/status/:status
func (h *BookHandler) GetByStatus(c *gin.Context) {
	status, ok := model.ParseStatus(c.Param("status"))
	if !ok {
		response.Fail(c, apperror.InvalidParam("status", "must be one of "+joinTags(model.Statuses())))
		return
	}

	books, err := h.service.GetByStatus(c.Request.Context(), status)
	h.list(c, books, err)
}

// GetByAuthor - GET /books/author/:authorId
func (h *BookHandler) GetByAuthor(c *gin.Context) {
	authorID, ok := response.ParamUUID(c, "authorId")
	if !ok {
		return
	}

	books, err := h.service.GetByAuthor(c.Request.Context(), authorID)
	h.list(c, books, err)
}

// SearchByTitle - GET /books/search?title=
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	books, err := h.service.SearchByTitle(c.Request.Context(), c.Query("title"))
	h.list(c, books, err)
}

// ════════════════════════════════════════════════════════════════
// WRITE
// ════════════════════════════════════════════════════════════════

// Create - POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.BookRequest
	if !response.BindJSON(c, &req) {
		return
	}

	book, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, book)
}

// Update - PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req model.BookRequest
	if !response.BindJSON(c, &req) {
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, &req)
	h.one(c, book, err)
}

// Delete - DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
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
// LENDING
// ════════════════════════════════════════════════════════════════

// Borrow - PUT /books/:id/borrow
func (h *BookHandler) Borrow(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	book, err := h.service.Borrow(c.Request.Context(), id)
	h.one(c, book, err)
}

// Return - PUT /books/:id/return
func (h *BookHandler) Return(c *gin.Context) {
	id, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	book, err := h.service.Return(c.Request.Context(), id)
	h.one(c, book, err)
}

func (h *BookHandler) one(c *gin.Context, book *model.BookResponse, err error) {
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) list(c *gin.Context, books []*model.BookResponse, err error) {
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

func joinTags[T ~string](tags []T) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

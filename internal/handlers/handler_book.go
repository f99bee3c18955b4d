package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookHandler handles HTTP requests for catalog titles and their copies.
type bookHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newBookHandler(cs portssvc.CatalogSvcFacade) *bookHandler {
	return &bookHandler{catalogService: cs}
}

// registerBookRoutes registers routes related to books.
func registerBookRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newBookHandler(catalogService)

	books := rg.Group("/books")
	{
		books.POST("", h.registerBook)
		books.GET("", h.listBooks)
		books.GET("/:isbn", h.getBook)
		books.POST("/:isbn/deactivate", h.deactivateBook)
		books.POST("/:isbn/reactivate", h.reactivateBook)
		books.GET("/:isbn/availability", h.getAvailability)
		books.POST("/:isbn/copies", h.registerCopy)
		books.GET("/:isbn/copies", h.listCopies)
	}
}

// registerBook godoc
// @Summary Register a book
// @Description Adds a title to the catalog. The ISBN must be unique.
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.RegisterBookRequest true "Book details"
// @Success 201 {object} domain.Book
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "ISBN already registered"
// @Security BearerAuth
// @Router /books [post]
func (h *bookHandler) registerBook(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.RegisterBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := h.catalogService.RegisterBook(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to register book")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Book registered", slog.String("isbn", book.ISBN))
	c.JSON(http.StatusCreated, book)
}

// listBooks godoc
// @Summary List books
// @Description Lists books ordered by ISBN, optionally filtered by a search term.
// @Tags books
// @Produce json
// @Param q query string false "Matches ISBN, title or author"
// @Param activeOnly query bool false "Only active books"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListBooksResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /books [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	var params dto.ListBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.catalogService.ListBooks(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list books")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getBook godoc
// @Summary Get a book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} domain.Book
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{isbn} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	book, err := h.catalogService.GetBook(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondError(c, err, "Failed to get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// deactivateBook godoc
// @Summary Deactivate a book
// @Description Soft-deletes a book and all of its copies. Rejected while any copy is on loan.
// @Tags books
// @Param isbn path string true "ISBN"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A copy is on loan"
// @Security BearerAuth
// @Router /books/{isbn}/deactivate [post]
func (h *bookHandler) deactivateBook(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeactivateBook(c.Request.Context(), c.Param("isbn"), actor); err != nil {
		respondError(c, err, "Failed to deactivate book")
		return
	}
	c.Status(http.StatusNoContent)
}

// reactivateBook godoc
// @Summary Reactivate a book
// @Tags books
// @Param isbn path string true "ISBN"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{isbn}/reactivate [post]
func (h *bookHandler) reactivateBook(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.catalogService.ReactivateBook(c.Request.Context(), c.Param("isbn"), actor); err != nil {
		respondError(c, err, "Failed to reactivate book")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAvailability godoc
// @Summary Count lendable copies
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} dto.AvailabilityResponse
// @Security BearerAuth
// @Router /books/{isbn}/availability [get]
func (h *bookHandler) getAvailability(c *gin.Context) {
	isbn := c.Param("isbn")
	n, err := h.catalogService.CountAvailable(c.Request.Context(), isbn)
	if err != nil {
		respondError(c, err, "Failed to count available copies")
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{ISBN: isbn, Available: n})
}

// registerCopy godoc
// @Summary Register a copy
// @Description Adds a physical copy to an active book and assigns the next copy code.
// @Tags copies
// @Accept json
// @Produce json
// @Param isbn path string true "ISBN"
// @Param copy body dto.RegisterCopyRequest false "Copy notes"
// @Success 201 {object} domain.Copy
// @Failure 404 {object} ErrorResponse "Book not found or inactive"
// @Security BearerAuth
// @Router /books/{isbn}/copies [post]
func (h *bookHandler) registerCopy(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.RegisterCopyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	bookCopy, err := h.catalogService.RegisterCopy(c.Request.Context(), c.Param("isbn"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to register copy")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Copy registered", slog.String("copy_code", bookCopy.Code))
	c.JSON(http.StatusCreated, bookCopy)
}

// listCopies godoc
// @Summary List the copies of a book
// @Tags copies
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {array} domain.Copy
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{isbn}/copies [get]
func (h *bookHandler) listCopies(c *gin.Context) {
	copies, err := h.catalogService.ListCopies(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondError(c, err, "Failed to list copies")
		return
	}
	c.JSON(http.StatusOK, copies)
}

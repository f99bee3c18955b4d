package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// authHandler handles librarian login and staff accounts.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public login route behind a per-IP limiter.
func registerAuthRoutes(r *gin.Engine, loginLimiter *limiter.Limiter, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitergin.NewMiddleware(loginLimiter), h.login)
	}
}

// registerLibrarianRoutes sets up the authenticated staff account routes.
func registerLibrarianRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	librarians := rg.Group("/librarians")
	{
		librarians.POST("", h.createLibrarian)
		librarians.GET("/me", h.getCurrentLibrarian)
		librarians.GET("/:librarianID", h.getLibrarian)
	}
}

// login godoc
// @Summary Librarian login
// @Description Authenticates a librarian and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createLibrarian godoc
// @Summary Create a librarian account
// @Tags librarians
// @Accept json
// @Produce json
// @Param librarian body dto.CreateLibrarianRequest true "Librarian details"
// @Success 201 {object} domain.Librarian
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Security BearerAuth
// @Router /librarians [post]
func (h *authHandler) createLibrarian(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreateLibrarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	librarian, err := h.authService.CreateLibrarian(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create librarian")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Librarian created", slog.String("librarian_id", librarian.LibrarianID))
	c.JSON(http.StatusCreated, librarian)
}

// getCurrentLibrarian godoc
// @Summary Get the signed-in librarian
// @Tags librarians
// @Produce json
// @Success 200 {object} domain.Librarian
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /librarians/me [get]
func (h *authHandler) getCurrentLibrarian(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	librarian, err := h.authService.GetLibrarian(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to load current librarian")
		return
	}
	c.JSON(http.StatusOK, librarian)
}

// getLibrarian godoc
// @Summary Get a librarian by ID
// @Tags librarians
// @Produce json
// @Param librarianID path string true "Librarian ID"
// @Success 200 {object} domain.Librarian
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /librarians/{librarianID} [get]
func (h *authHandler) getLibrarian(c *gin.Context) {
	librarian, err := h.authService.GetLibrarian(c.Request.Context(), c.Param("librarianID"))
	if err != nil {
		respondError(c, err, "Failed to load librarian")
		return
	}
	c.JSON(http.StatusOK, librarian)
}

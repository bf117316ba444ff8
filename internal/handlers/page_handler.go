package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

// PageHandler answers page navigations with a JSON descriptor the front end
// renders from. Access control has already run on these routes.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type Page struct {
	Name  string       `json:"page"`
	Title string       `json:"title"`
	Role  models.Role  `json:"role,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// Static serves a fixed page.
func (h *PageHandler) Static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Page{Name: name, Title: title, User: viewer(c)})
	}
}

// Dashboard serves /dashboard/:role and its sub pages.
func (h *PageHandler) Dashboard(c *gin.Context) {
	role := models.Role(c.Param("role"))
	if !role.Valid() {
		c.JSON(http.StatusNotFound, Page{Name: "not_found", Title: "Page not found"})
		return
	}

	name := "dashboard"
	if section := c.Param("section"); section != "" {
		name = "dashboard_" + section
	}

	c.JSON(http.StatusOK, Page{
		Name:  name,
		Title: string(role) + " dashboard",
		Role:  role,
		User:  viewer(c),
	})
}

// viewer is the profile from the user cookie, when readable.
func viewer(c *gin.Context) *models.User {
	raw, err := c.Cookie(session.UserCookie)
	if err != nil {
		return nil
	}
	u, ok := session.ParseUserCookie(raw)
	if !ok {
		return nil
	}
	return &u
}

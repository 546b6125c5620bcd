package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/users-auth-api/pkg/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

type healthBody struct {
	Message string `json:"message"`
	Note    string `json:"note,omitempty"`
}

func (h *HealthHandler) Test(c *gin.Context) {
	response.JSON(c, http.StatusOK, healthBody{Message: "Server is running and accessible!"})
}

// TestLogin lets clients check that the login path is reachable with GET.
func (h *HealthHandler) TestLogin(c *gin.Context) {
	response.JSON(c, http.StatusOK, healthBody{
		Message: "Login endpoint is accessible",
		Note:    "This is a test endpoint. The actual login endpoint only accepts POST requests.",
	})
}

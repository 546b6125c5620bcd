package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/application"
	"github.com/oksasatya/users-auth-api/internal/domain/entity"
	"github.com/oksasatya/users-auth-api/internal/interface/middleware"
	"github.com/oksasatya/users-auth-api/pkg/response"
)

const msgNameEmailRequired = "Name and email are required"

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"username"`
	Email    string `json:"email" binding:"useremail"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name  string `json:"name" binding:"username"`
	Email string `json:"email" binding:"useremail"`
}

// userRow is the admin listing shape; password_hash is null when unset.
type userRow struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash *string `json:"password_hash"`
}

// publicUser never carries credentials.
type publicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toPublicUser(u entity.User) publicUser {
	return publicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	out := make([]userRow, 0, len(users))
	for _, u := range users {
		row := userRow{ID: u.ID, Name: u.Name, Email: u.Email}
		if u.HasPassword() {
			hash := u.PasswordHash
			row.PasswordHash = &hash
		}
		out = append(out, row)
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	id, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	response.Created(c, "User added", id)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	if err := h.Svc.UpdateUser(c.Request.Context(), id, application.UpdateUserInput{Name: req.Name, Email: req.Email}); err != nil {
		writeError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	response.Message(c, "User updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	response.Message(c, "User deleted")
}

// Search queries the users index: GET /users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// Profile returns the token subject. Requires middleware.JWTAuth.
func (h *UserHandler) Profile(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err, msgNameEmailRequired)
		return
	}
	response.JSON(c, http.StatusOK, toPublicUser(*u))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, msgInvalidUserID)
		return 0, false
	}
	return id, true
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/application"
	"github.com/oksasatya/users-auth-api/pkg/response"
)

const (
	msgRegisterRequired = "Name, email and password are required"
	msgLoginRequired    = "Email and password are required"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"username"`
	Email    string `json:"email" binding:"useremail"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.Logger, err, msgRegisterRequired)
		return
	}
	id, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err, msgRegisterRequired)
		return
	}
	response.Created(c, "User registered successfully", id)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.Logger, err, msgLoginRequired)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err, msgLoginRequired)
		return
	}
	response.JSON(c, 0, loginResponse{Token: res.Token, User: toPublicUser(res.User)})
}

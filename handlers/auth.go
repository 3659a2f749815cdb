package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboarding-service/services"
	"onboarding-service/utils"
)

type AuthHandler struct {
	svc   *services.AuthService
	kafka utils.KafkaProducer
}

func NewAuthHandler(svc *services.AuthService, kafka utils.KafkaProducer) *AuthHandler {
	return &AuthHandler{svc: svc, kafka: kafka}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.svc.Register(req.FullName, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	go sendClientEvent(h.kafka, "client_registered", client)

	c.JSON(http.StatusCreated, gin.H{"email": client.Email})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.svc.SignIn(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"email": user.Email,
		"role":  user.Role,
	})
}

package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/tilakWebkorps/Healthy-meal/middleware"
	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/services"
	"github.com/tilakWebkorps/Healthy-meal/utils"

	"github.com/gin-gonic/gin"
)

// Login verifies the submitted credentials and responds with a session token.
func (h *APIHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "wrong credentials entered"})
		return
	}

	token, err := h.sessionService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusForbidden, gin.H{"message": "wrong credentials entered"})
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You are logged in.", "token": token})
}

// Logout revokes the current session token.
func (h *APIHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Hmm nothing happened."})
		return
	}
	if err := h.sessionService.Logout(token); err != nil {
		if errors.Is(err, services.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Hmm nothing happened."})
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	log.Printf("INFO: [APIHandler] Session logged out.")
	c.JSON(http.StatusOK, gin.H{"message": "You are logged out."})
}

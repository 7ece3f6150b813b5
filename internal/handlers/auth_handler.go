package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/config"
	"github.com/rmdantas/agenda-api/internal/models"
	"github.com/rmdantas/agenda-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config

	// swapped out in tests; the default does DNS lookups
	emailDomainValid func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:               db,
		config:           cfg,
		emailDomainValid: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.Provider{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username_already_exists"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "E-mail domain does not look valid.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	provider := models.Provider{
		Username:     username,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
	}

	// Provider and schedule seed commit together; a provider without hours
	// would serve an empty grid forever.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&provider).Error; err != nil {
			return err
		}

		hours := defaultSchedule(provider.ID)
		return tx.Create(&hours).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_provider"})
		return
	}

	token, err := h.generateToken(&provider)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"provider": gin.H{
			"id":       provider.ID,
			"username": provider.Username,
			"name":     provider.Name,
			"email":    provider.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var provider models.Provider
	if err := h.db.
		Where("username = ?", username).
		First(&provider).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(provider.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&provider)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": gin.H{
			"id":       provider.ID,
			"username": provider.Username,
			"name":     provider.Name,
			"email":    provider.Email,
		},
		"token": token,
	})
}

// defaultSchedule is the grid a fresh provider serves on every weekday.
func defaultSchedule(providerID uint) []models.WorkingHours {
	hours := make([]models.WorkingHours, 0, 7)
	for weekday := 0; weekday < 7; weekday++ {
		hours = append(hours, models.WorkingHours{
			ProviderID: providerID,
			Weekday:    weekday,
			Active:     true,
			StartTime:  "09:00",
			EndTime:    "18:00",
		})
	}
	return hours
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(provider *models.Provider) (string, error) {
	claims := jwt.MapClaims{
		"sub":       provider.ID,
		"username":  provider.Username,
		"superuser": provider.Superuser,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

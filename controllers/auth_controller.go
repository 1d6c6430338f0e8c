package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"materials-and-more/config"
	"materials-and-more/libs"
	"materials-and-more/models"
	"materials-and-more/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type AuthController struct {
	db      models.Database
	captcha libs.CaptchaVerifier
	cfg     *config.Config
}

func NewAuthController(db models.Database, captcha libs.CaptchaVerifier, cfg *config.Config) *AuthController {
	return &AuthController{db: db, captcha: captcha, cfg: cfg}
}

// Login godoc
// @Summary Admin login
// @Description Login with username, password and CAPTCHA token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" || req.CaptchaToken == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Username, password, and captcha are required"})
		return
	}

	ok, err := ctrl.captcha.Verify(c.Request.Context(), req.CaptchaToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Captcha verification error"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Captcha verification failed"})
		return
	}

	var user models.User
	err = ctrl.db.QueryRow(c.Request.Context(),
		"SELECT id, username, password, role FROM users WHERE username=$1",
		req.Username).Scan(&user.ID, &user.Username, &user.Password, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Access denied"})
		return
	}

	token, err := utils.GenerateToken(ctrl.cfg.JWTSecret, ctrl.cfg.JWTExpiry, user.ID, user.Username, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}

// AdminWelcome godoc
// @Summary Admin landing
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin [get]
func (ctrl *AuthController) AdminWelcome(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Access denied"})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Welcome, %s", c.GetString("username")),
	})
}

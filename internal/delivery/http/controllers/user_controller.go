package controllers

import (
	"log/slog"
	"net/http"

	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/helpers"
	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// Signup godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param user body domain.SignupInput true "User data"
// @Success 200 {object} domain.Result "data contains the created user"
// @Failure 400 {object} domain.Result "validation failed or email taken"
// @Router /user/signup [post]
func (c *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	var in domain.SignupInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	result, err := c.Service.Signup(r.Context(), in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// LoginRequest is the request body for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Log in with email and password
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} domain.Result "data contains access_token and user"
// @Failure 401 {object} domain.Result "invalid password"
// @Failure 422 {object} domain.Result "unknown email"
// @Router /user/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetUserByID godoc
// @Summary Get a user by ID
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result
// @Router /user/{id} [get]
func (c *UserController) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	result, err := c.Service.GetUserByID(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// GetAllUsers godoc
// @Summary List all users
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Result
// @Router /user [get]
func (c *UserController) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.GetAllUsers(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// UpdateUserProfile godoc
// @Summary Update a user profile
// @Description Partial update. Email or phone changes are propagated onto the user's events.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body domain.UpdateUserInput true "Fields to update"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result
// @Router /user/{id} [patch]
func (c *UserController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	var in domain.UpdateUserInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	result, err := c.Service.UpdateUserProfile(r.Context(), id, in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result
// @Router /user/{id} [delete]
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		helpers.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	result, err := c.Service.DeleteUser(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// ForgotPasswordRequest is the request body for POST /user/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (req ForgotPasswordRequest) Validate() []string {
	if req.Email == "" {
		return []string{"email is required"}
	}
	return nil
}

// ForgotPassword godoc
// @Summary Request a password-reset token
// @Tags user
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Account email"
// @Success 200 {object} domain.Result
// @Failure 404 {object} domain.Result
// @Router /user/forgot-password [post]
func (c *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

// ResetPasswordRequest is the request body for POST /user/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Validate implements helpers.Validator.
func (req ResetPasswordRequest) Validate() []string {
	var errs []string
	if req.Token == "" {
		errs = append(errs, "token is required")
	}
	if req.NewPassword == "" {
		errs = append(errs, "newPassword is required")
	}
	return errs
}

// ResetPassword godoc
// @Summary Reset a password with a reset token
// @Tags user
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} domain.Result
// @Failure 400 {object} domain.Result "invalid or expired token"
// @Router /user/reset-password [post]
func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteResult(w, result)
}

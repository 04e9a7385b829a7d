package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pipeboard/roster-console/internal/api/metrics"
	"github.com/pipeboard/roster-console/internal/core/domain"
	"github.com/pipeboard/roster-console/internal/core/ports"
)

// UserHandler handles HTTP requests for roster operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List the team roster
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	_, _, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), role)
	if err != nil {
		return err
	}
	metrics.RosterFetchesTotal.Inc()

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /users.
//
// @Summary      Add a team member
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	_, _, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, err := h.service.Create(c.Request().Context(), role, ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		recordMutation("create", role, err)
		return err
	}
	recordMutation("create", role, nil)

	return c.JSON(http.StatusCreated, toUserResponse(created))
}

// Update handles PUT /users/:id.
//
// @Summary      Edit a team member
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateUserRequest  true  "Edited account details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	_, _, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.service.Update(c.Request().Context(), role, c.Param("id"), ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		recordMutation("update", role, err)
		return err
	}
	recordMutation("update", role, nil)

	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete handles DELETE /users/:id.
//
// @Summary      Remove a team member
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204  "removed"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	_, _, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), role, c.Param("id")); err != nil {
		recordMutation("delete", role, err)
		return err
	}
	recordMutation("delete", role, nil)

	return c.NoContent(http.StatusNoContent)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func recordMutation(op string, role domain.Role, err error) {
	switch {
	case err == nil:
		metrics.UserMutationsTotal.WithLabelValues(op, "success").Inc()
	case errors.Is(err, domain.ErrForbidden):
		metrics.ForbiddenAttemptsTotal.WithLabelValues(op, string(role)).Inc()
		metrics.UserMutationsTotal.WithLabelValues(op, "forbidden").Inc()
	default:
		metrics.UserMutationsTotal.WithLabelValues(op, "error").Inc()
	}
}

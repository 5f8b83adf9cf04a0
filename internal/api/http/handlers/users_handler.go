package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/service"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// UserService is the user workflow the handler drives.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input service.UserCreateInput) (*domain.User, error)
}

// UsersHandler serves /api/users.
type UsersHandler struct {
	service UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// ListUsers GET /api/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(items)
}

// CreateUser POST /api/users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	user, err := h.service.Create(c.UserContext(), service.UserCreateInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(userResponse(user))
}

func userResponse(user *domain.User) dto.UserResponse {
	complaints := make([]dto.ComplaintResponse, 0, len(user.Complaints))
	for i := range user.Complaints {
		complaints = append(complaints, complaintResponse(&user.Complaints[i]))
	}
	return dto.UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
		Complaints: complaints,
	}
}

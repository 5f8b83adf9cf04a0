package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/service"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// ComplaintService is the complaint workflow the handler drives.
type ComplaintService interface {
	List(ctx context.Context) ([]domain.Complaint, error)
	Create(ctx context.Context, input service.ComplaintCreateInput) (*domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.Complaint, error)
}

// ComplaintsHandler serves /api/complaints.
type ComplaintsHandler struct {
	service ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// ListComplaints GET /api/complaints.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return c.JSON(items)
}

// CreateComplaint POST /api/complaints.
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	complaint, err := h.service.Create(c.UserContext(), service.ComplaintCreateInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(complaintResponse(complaint))
}

// UpdateComplaint PATCH /api/complaints/:id.
func (h *ComplaintsHandler) UpdateComplaint(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid complaint id")
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	status, err := domain.ParseComplaintStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("invalid status")
	}
	complaint, err := h.service.UpdateStatus(c.UserContext(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(complaintResponse(complaint))
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	resp := dto.ComplaintResponse{
		ID:          complaint.ID,
		Title:       complaint.Title,
		Description: complaint.Description,
		Status:      string(complaint.Status),
		UserID:      complaint.UserID,
		CreatedAt:   complaint.CreatedAt,
		UpdatedAt:   complaint.UpdatedAt,
	}
	if complaint.User != nil {
		resp.User = &dto.UserRefResponse{
			ID:    complaint.User.ID,
			Name:  complaint.User.Name,
			Email: complaint.User.Email,
		}
	}
	return resp
}

package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dailypress/newsroom/app/models"
	"github.com/dailypress/newsroom/app/repository"
	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

// AdminNewsController handles the review queue, review decisions,
// retractions and uploader priorities.
type AdminNewsController struct {
	newsRepo     repository.NewsRepository
	priorityRepo repository.PriorityRepository
}

// NewAdminNewsController creates an admin news controller with repositories
func NewAdminNewsController(newsRepo repository.NewsRepository, priorityRepo repository.PriorityRepository) *AdminNewsController {
	return &AdminNewsController{newsRepo: newsRepo, priorityRepo: priorityRepo}
}

// HandleReviewQueue lists every submission for the reviewer, newest first.
func (anc *AdminNewsController) HandleReviewQueue(c *fiber.Ctx) error {
	news, err := anc.newsRepo.GetAllSubmissions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"news":    news,
	})
}

type reviewRequest struct {
	NewsID         uint64 `json:"news_id" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=approved declined"`
	ReviewedBy     string `json:"reviewed_by" validate:"required"`
	RejectedReason string `json:"rejected_reason"`
}

// HandleReview applies a single approve/decline decision. Approval is in
// place: the row becomes visible to the selection queries on the next read.
func (anc *AdminNewsController) HandleReview(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, apperr.Validation("", "missing or invalid fields: %v", err))
	}
	if req.Status == models.NewsStatusDeclined && req.RejectedReason == "" {
		return respondError(c, apperr.Validation("rejected_reason",
			"rejection reason is required when declining"))
	}

	if err := anc.newsRepo.Review(req.NewsID, req.Status, req.ReviewedBy, req.RejectedReason); err != nil {
		return respondError(c, err)
	}

	message := "News approved successfully!"
	if req.Status == models.NewsStatusDeclined {
		message = "News declined successfully!"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

type retractRequest struct {
	ID             uint64 `json:"id" validate:"required"`
	RejectedReason string `json:"rejected_reason" validate:"required"`
	ReviewedBy     string `json:"reviewed_by" validate:"required"`
}

// HandleRetract declines an already-approved or pending item with a reason.
// Rows are never physically deleted.
func (anc *AdminNewsController) HandleRetract(c *fiber.Ctx) error {
	var req retractRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, apperr.Validation("", "missing or invalid fields: %v", err))
	}

	if err := anc.newsRepo.Retract(req.ID, req.RejectedReason, req.ReviewedBy); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "News item retracted successfully",
	})
}

// HandleListPriorities lists uploader priorities, highest rank first.
func (anc *AdminNewsController) HandleListPriorities(c *fiber.Ctx) error {
	priorities, err := anc.priorityRepo.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"priorities": priorities,
	})
}

type priorityRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Priority int    `json:"priority" validate:"gte=0"`
}

// HandleSetPriority creates or updates the priority row for an uploader.
// Uploaders without a row never enter the priority-ordered admin pools.
func (anc *AdminNewsController) HandleSetPriority(c *fiber.Ctx) error {
	var req priorityRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, apperr.Validation("", "missing or invalid fields: %v", err))
	}

	if err := anc.priorityRepo.Upsert(&models.UserPriority{
		UserID:   req.UserID,
		Priority: req.Priority,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Priority saved",
	})
}

// HandleDeletePriority removes an uploader from the ranking. Their approved
// items leave the admin active pool on the next feed read.
func (anc *AdminNewsController) HandleDeletePriority(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return respondError(c, apperr.Validation("user_id", "user ID is required"))
	}

	if _, err := anc.priorityRepo.GetByUserID(userID); err != nil {
		return respondError(c, err)
	}
	if err := anc.priorityRepo.Delete(userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Priority removed",
	})
}

package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dailypress/newsroom/app/models"
	"github.com/dailypress/newsroom/app/repository"
	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/magazine"
	"github.com/dailypress/newsroom/internal/pkg/summary"
)

// MagazineController drives the generation pipeline and the publication
// finalizer.
type MagazineController struct {
	generator  *magazine.Generator
	newsRepo   repository.NewsRepository
	summarySvc *summary.Service
}

// NewMagazineController creates a magazine controller.
func NewMagazineController(generator *magazine.Generator, newsRepo repository.NewsRepository, summarySvc *summary.Service) *MagazineController {
	return &MagazineController{
		generator:  generator,
		newsRepo:   newsRepo,
		summarySvc: summarySvc,
	}
}

type generateRequest struct {
	Pages []magazine.Page `json:"pages"`
}

// HandleGenerate runs the full pipeline for the submitted page layout.
// Publication is a separate explicit call; generating alone never mutates
// the store.
func (mc *MagazineController) HandleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}

	result, err := mc.generator.Generate(c.Context(), req.Pages)
	if err != nil {
		log.Errorf("[Magazine] generation failed: %v", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Magazine generated successfully",
		"pdfUrl":   result.PDFURL,
		"filename": result.Filename,
	})
}

type summaryRequest struct {
	UserID string `json:"user_id"`
}

// HandleSummary produces the "inside this issue" line from the viewer's
// active pool.
func (mc *MagazineController) HandleSummary(c *fiber.Ctx) error {
	req := summaryRequest{UserID: models.AdminUser}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, apperr.Validation("", "invalid request body: %v", err))
		}
	}
	if req.UserID == "" {
		req.UserID = models.AdminUser
	}

	var active []models.News
	var err error
	if req.UserID == models.AdminUser {
		active, err = mc.newsRepo.ActiveGlobal()
	} else {
		active, err = mc.newsRepo.ActiveForUploader(req.UserID)
	}
	if err != nil {
		return respondError(c, err)
	}

	headlines := make([]summary.Headline, 0, len(active))
	for _, item := range active {
		headlines = append(headlines, summary.Headline{Title: item.Title, Category: item.Category})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"summary": mc.summarySvc.IssueSummary(c.Context(), headlines),
	})
}

type publishRequest struct {
	NewsIDs []uint64 `json:"newsIds"`
}

// HandlePublish finalizes the ids placed into a magazine in one batch write.
// Repeating the call for already-published ids is a no-op with an affected
// count of zero.
func (mc *MagazineController) HandlePublish(c *fiber.Ctx) error {
	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if len(req.NewsIDs) == 0 {
		return respondError(c, apperr.Validation("newsIds", "invalid newsIds provided"))
	}

	affected, err := mc.newsRepo.MarkPublished(req.NewsIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"message":      fmt.Sprintf("%d news items marked as published", affected),
		"affectedRows": affected,
	})
}

// HandleListPDFs enumerates previously generated magazine PDFs.
func (mc *MagazineController) HandleListPDFs(c *fiber.Ctx) error {
	pdfs, err := magazine.ListGenerated(mc.generator.OutputDir)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"pdfs": pdfs})
}

package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dailypress/newsroom/app/models"
	"github.com/dailypress/newsroom/app/repository"
	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/imageutil"
	"github.com/dailypress/newsroom/internal/pkg/summary"
)

// NewsController handles contributor-facing news requests: submission, the
// submission list and the pooled feed.
type NewsController struct {
	newsRepo repository.NewsRepository
	enhancer summary.JSONGenerator
}

// NewNewsController creates a news controller over the repository and the
// optional draft enhancer.
func NewNewsController(newsRepo repository.NewsRepository, enhancer summary.JSONGenerator) *NewsController {
	return &NewsController{newsRepo: newsRepo, enhancer: enhancer}
}

// submitEntry is one entry of a multipart submission. ImageIndex points at
// the image_<n> file part that belongs to this entry.
type submitEntry struct {
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Category      string            `json:"category"`
	Details       map[string]string `json:"details"`
	Date          string            `json:"date"`
	HasImage      bool              `json:"has_image"`
	ImageIndex    *int              `json:"image_index"`
	PriorityOrder int               `json:"priority_order"`
}

// jsonSubmission is the single-entry JSON body kept for backward
// compatibility with older clients.
type jsonSubmission struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	UploadedBy  string `json:"uploaded_by"`
	ImageBase64 string `json:"imageBase64"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

type submitResult struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// HandleSubmit accepts a batch of news entries. The admin uploader is
// auto-approved, everyone else lands in the review queue.
func (nc *NewsController) HandleSubmit(c *fiber.Ctx) error {
	if strings.Contains(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		return nc.handleMultipartSubmit(c)
	}
	return nc.handleJSONSubmit(c)
}

func (nc *NewsController) handleMultipartSubmit(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, apperr.Validation("", "invalid multipart form: %v", err))
	}

	uploadedBy := formValue(form.Value, "uploaded_by")
	if uploadedBy == "" {
		return respondError(c, apperr.Validation("uploaded_by", "missing required field"))
	}

	entriesJSON := formValue(form.Value, "entries")
	if entriesJSON == "" {
		return respondError(c, apperr.Validation("entries", "missing entries data"))
	}
	var entries []submitEntry
	if err := json.Unmarshal([]byte(entriesJSON), &entries); err != nil || len(entries) == 0 {
		return respondError(c, apperr.Validation("entries", "invalid entries data format"))
	}

	status := statusForUploader(uploadedBy)
	results := make([]submitResult, 0, len(entries))

	for i, entry := range entries {
		if strings.TrimSpace(entry.Title) == "" {
			return respondError(c, apperr.Validation("title",
				"missing required field 'title' in entry #%d", i+1))
		}

		var image []byte
		if entry.HasImage && entry.ImageIndex != nil {
			if files := form.File[fmt.Sprintf("image_%d", *entry.ImageIndex)]; len(files) > 0 {
				image = readUpload(files[0])
			}
		}

		news, err := nc.insertNews(entry, uploadedBy, status, image)
		if err != nil {
			return respondError(c, err)
		}
		results = append(results, submitResult{
			ID:       news.ID,
			Title:    news.Title,
			Status:   news.Status,
			Category: news.Category,
		})
	}

	message := fmt.Sprintf("Successfully submitted for review! %d entries pending approval.", len(results))
	if status == models.NewsStatusApproved {
		message = fmt.Sprintf("Successfully published! %d entries added to news feed.", len(results))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"results": results,
	})
}

func (nc *NewsController) handleJSONSubmit(c *fiber.Ctx) error {
	var body jsonSubmission
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if strings.TrimSpace(body.Title) == "" || body.UploadedBy == "" {
		return respondError(c, apperr.Validation("", "missing required fields"))
	}

	var image []byte
	if strings.HasPrefix(body.ImageBase64, "data:image") {
		raw, err := imageutil.DecodeDataURI(body.ImageBase64)
		if err != nil {
			return respondError(c, apperr.Validation("imageBase64", "%v", err))
		}
		image = normalizeImage(raw)
	}

	status := statusForUploader(body.UploadedBy)
	news, err := nc.insertNews(submitEntry{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
		Date:     body.Date,
	}, body.UploadedBy, status, image)
	if err != nil {
		return respondError(c, err)
	}

	message := "Document submitted for review!"
	if status == models.NewsStatusApproved {
		message = "Document published successfully!"
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  message,
		"id":       news.ID,
		"status":   news.Status,
		"category": news.Category,
	})
}

// insertNews builds and stores one news row.
func (nc *NewsController) insertNews(entry submitEntry, uploadedBy, status string, image []byte) (*models.News, error) {
	category := entry.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.IsValidCategory(category) {
		return nil, apperr.Validation("category", "unknown category %q", category)
	}
	if err := validateDetails(category, entry.Details); err != nil {
		return nil, err
	}

	content := entry.Content
	if content == "" && len(entry.Details) > 0 {
		content = detailsAsContent(category, entry.Details)
	}

	date := time.Now()
	if entry.Date != "" {
		parsed, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			return nil, apperr.Validation("date", "invalid date %q, expected YYYY-MM-DD", entry.Date)
		}
		date = parsed
	}

	news := &models.News{
		Date:          date,
		Title:         entry.Title,
		Content:       content,
		Image:         image,
		Category:      category,
		UploadedBy:    uploadedBy,
		Status:        status,
		PriorityOrder: entry.PriorityOrder,
	}
	if err := nc.newsRepo.Create(news); err != nil {
		return nil, fmt.Errorf("save news entry: %w", err)
	}
	return news, nil
}

// HandleMySubmissions lists an uploader's submissions with review metadata.
func (nc *NewsController) HandleMySubmissions(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return respondError(c, apperr.Validation("user_id", "user ID is required"))
	}

	news, err := nc.newsRepo.GetByUploader(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"news":    news,
	})
}

type feedRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
}

// feedEntry is a news row with the image blob replaced by a data URI.
type feedEntry struct {
	models.News
	Image string `json:"image"`
}

// HandleFeed returns the three pools for a viewer. The admin identity sees
// the global partitions, everyone else only their own uploads.
func (nc *NewsController) HandleFeed(c *fiber.Ctx) error {
	var req feedRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if req.UserID == "" {
		return respondError(c, apperr.Validation("user_id", "user ID is required"))
	}
	if req.Category == "" {
		req.Category = "all"
	}

	isAdmin := req.UserID == models.AdminUser
	var active, upcoming, published []models.News
	var err error

	if req.Category == "all" || req.Category == "active" {
		if isAdmin {
			active, err = nc.newsRepo.ActiveGlobal()
		} else {
			active, err = nc.newsRepo.ActiveForUploader(req.UserID)
		}
		if err != nil {
			return respondError(c, err)
		}
	}
	if req.Category == "all" || req.Category == "upcoming" {
		if isAdmin {
			upcoming, err = nc.newsRepo.UpcomingGlobal()
		} else {
			upcoming, err = nc.newsRepo.UpcomingForUploader(req.UserID)
		}
		if err != nil {
			return respondError(c, err)
		}
	}
	if req.Category == "all" || req.Category == "published" {
		if isAdmin {
			published, err = nc.newsRepo.PublishedGlobal()
		} else {
			published, err = nc.newsRepo.PublishedForUploader(req.UserID)
		}
		if err != nil {
			return respondError(c, err)
		}
	}

	activeOut := toFeedEntries(active)
	upcomingOut := toFeedEntries(upcoming)
	publishedOut := toFeedEntries(published)

	return c.JSON(fiber.Map{
		"activeNews":    activeOut,
		"upcomingNews":  upcomingOut,
		"publishedNews": publishedOut,
		"total":         len(activeOut) + len(upcomingOut) + len(publishedOut),
	})
}

type enhanceRequest struct {
	Prompt string `json:"prompt"`
}

// HandleEnhance polishes a rough draft into title/content copy via the
// generative backend.
func (nc *NewsController) HandleEnhance(c *fiber.Ctx) error {
	var req enhanceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return respondError(c, apperr.Validation("prompt", "prompt is required"))
	}

	draft, err := summary.Enhance(c.Context(), nc.enhancer, req.Prompt)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(draft)
}

// validateDetails checks a category's structured payload. Entries without a
// details payload pass: plain title/content submissions stay valid for every
// category.
func validateDetails(category string, details map[string]string) error {
	if len(details) == 0 {
		return nil
	}
	for _, field := range models.CategoryDetailFields[category] {
		if strings.TrimSpace(details[field]) == "" {
			return apperr.Validation(field, "missing required detail for category %q", category)
		}
	}
	return nil
}

// detailsAsContent lays the structured payload out as the story body when no
// free-text content was written: required fields first in their declared
// order, any extra keys after, sorted.
func detailsAsContent(category string, details map[string]string) string {
	var b strings.Builder
	written := map[string]bool{}
	writeLine := func(key string) {
		if written[key] || strings.TrimSpace(details[key]) == "" {
			return
		}
		written[key] = true
		b.WriteString(strings.ReplaceAll(key, "_", " "))
		b.WriteString(": ")
		b.WriteString(details[key])
		b.WriteString("\n")
	}

	for _, field := range models.CategoryDetailFields[category] {
		writeLine(field)
	}
	extras := make([]string, 0, len(details))
	for key := range details {
		if !written[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		writeLine(key)
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusForUploader(uploadedBy string) string {
	if uploadedBy == models.AdminUser {
		return models.NewsStatusApproved
	}
	return models.NewsStatusPending
}

func toFeedEntries(items []models.News) []feedEntry {
	out := make([]feedEntry, 0, len(items))
	for _, item := range items {
		out = append(out, feedEntry{
			News:  item,
			Image: imageutil.ToDataURI(item.Image),
		})
	}
	return out
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// readUpload reads and normalizes an uploaded image part. A broken or exotic
// file is stored as-is rather than rejecting the whole submission.
func readUpload(fh *multipart.FileHeader) []byte {
	f, err := fh.Open()
	if err != nil {
		log.Warnf("[News] cannot open uploaded image: %v", err)
		return nil
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		log.Warnf("[News] cannot read uploaded image: %v", err)
		return nil
	}
	return normalizeImage(raw)
}

func normalizeImage(raw []byte) []byte {
	normalized, err := imageutil.Normalize(raw)
	if err != nil {
		log.Warnf("[News] image normalization failed, storing original: %v", err)
		return raw
	}
	return normalized
}

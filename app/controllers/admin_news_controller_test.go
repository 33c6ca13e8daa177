package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailypress/newsroom/app/models"
)

func newAdminApp(repo *fakeNewsRepo) *fiber.App {
	app := fiber.New()
	anc := NewAdminNewsController(repo, &fakePriorityRepo{repo: repo})
	app.Get("/api/admin/news", anc.HandleReviewQueue)
	app.Post("/api/admin/news/review", anc.HandleReview)
	app.Post("/api/news/retract", anc.HandleRetract)
	app.Get("/api/admin/priorities", anc.HandleListPriorities)
	app.Post("/api/admin/priorities", anc.HandleSetPriority)
	app.Delete("/api/admin/priorities/:user_id", anc.HandleDeletePriority)
	return app
}

func seedPending(repo *fakeNewsRepo, uploader, title string) *models.News {
	news := &models.News{
		Date:       time.Now(),
		Title:      title,
		UploadedBy: uploader,
		Status:     models.NewsStatusPending,
	}
	repo.Create(news)
	return repo.items[news.ID]
}

func TestHandleReview(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		repo := newFakeNewsRepo()
		app := newAdminApp(repo)
		item := seedPending(repo, "alice", "Harbor")

		resp, body := doJSON(t, app, http.MethodPost, "/api/admin/news/review", map[string]interface{}{
			"news_id":     item.ID,
			"status":      "approved",
			"reviewed_by": "admin",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "News approved successfully!", body["message"])
		assert.Equal(t, models.NewsStatusApproved, item.Status)
		assert.Equal(t, "admin", item.ReviewedBy)
		require.NotNil(t, item.ReviewedAt)
	})

	t.Run("decline requires a reason", func(t *testing.T) {
		repo := newFakeNewsRepo()
		app := newAdminApp(repo)
		item := seedPending(repo, "alice", "Harbor")

		resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/news/review", map[string]interface{}{
			"news_id":     item.ID,
			"status":      "declined",
			"reviewed_by": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, models.NewsStatusPending, item.Status, "a rejected request must not touch the row")

		resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/news/review", map[string]interface{}{
			"news_id":         item.ID,
			"status":          "declined",
			"reviewed_by":     "admin",
			"rejected_reason": "duplicate story",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, models.NewsStatusDeclined, item.Status)
		assert.Equal(t, "duplicate story", item.RejectedReason)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		repo := newFakeNewsRepo()
		app := newAdminApp(repo)
		item := seedPending(repo, "alice", "Harbor")

		resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/news/review", map[string]interface{}{
			"news_id":     item.ID,
			"status":      "published",
			"reviewed_by": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("already reviewed rows are not matched", func(t *testing.T) {
		repo := newFakeNewsRepo()
		app := newAdminApp(repo)
		item := seedPending(repo, "alice", "Harbor")
		item.Status = models.NewsStatusApproved

		resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/news/review", map[string]interface{}{
			"news_id":         item.ID,
			"status":          "declined",
			"reviewed_by":     "admin",
			"rejected_reason": "changed my mind",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, models.NewsStatusApproved, item.Status, "a decision is final")
	})

	t.Run("missing id", func(t *testing.T) {
		app := newAdminApp(newFakeNewsRepo())
		resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/news/review", map[string]interface{}{
			"status":      "approved",
			"reviewed_by": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleRetract(t *testing.T) {
	t.Run("declines an approved item", func(t *testing.T) {
		repo := newFakeNewsRepo()
		app := newAdminApp(repo)
		item := seedApproved(repo, "alice", time.Now(), "Harbor")

		resp, body := doJSON(t, app, http.MethodPost, "/api/news/retract", map[string]interface{}{
			"id":              item.ID,
			"rejected_reason": "factual error",
			"reviewed_by":     "admin",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "News item retracted successfully", body["message"])
		assert.Equal(t, models.NewsStatusDeclined, item.Status)
		assert.Equal(t, "factual error", item.RejectedReason)
	})

	t.Run("reason is mandatory", func(t *testing.T) {
		repo := newFakeNewsRepo()
		app := newAdminApp(repo)
		item := seedApproved(repo, "alice", time.Now(), "Harbor")

		resp, _ := doJSON(t, app, http.MethodPost, "/api/news/retract", map[string]interface{}{
			"id":          item.ID,
			"reviewed_by": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, models.NewsStatusApproved, item.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		app := newAdminApp(newFakeNewsRepo())
		resp, _ := doJSON(t, app, http.MethodPost, "/api/news/retract", map[string]interface{}{
			"id":              999,
			"rejected_reason": "x",
			"reviewed_by":     "admin",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleReviewQueue(t *testing.T) {
	repo := newFakeNewsRepo()
	app := newAdminApp(repo)
	seedPending(repo, "alice", "one")
	seedPending(repo, "bob", "two")

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/news", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["news"].([]interface{}), 2)
}

func TestHandlePriorities(t *testing.T) {
	repo := newFakeNewsRepo()
	app := newAdminApp(repo)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/priorities", map[string]interface{}{
		"user_id":  "alice",
		"priority": 1,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, repo.priorities["alice"])

	// upsert overwrites
	doJSON(t, app, http.MethodPost, "/api/admin/priorities", map[string]interface{}{
		"user_id":  "alice",
		"priority": 3,
	})
	assert.Equal(t, 3, repo.priorities["alice"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/priorities", map[string]interface{}{
		"priority": 2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	repo.priorities["bob"] = 2
	_, body := doJSON(t, app, http.MethodGet, "/api/admin/priorities", nil)
	priorities := body["priorities"].([]interface{})
	require.Len(t, priorities, 2)
	assert.Equal(t, "bob", priorities[0].(map[string]interface{})["user_id"])
}

func TestHandleDeletePriority(t *testing.T) {
	repo := newFakeNewsRepo()
	repo.priorities["alice"] = 1
	app := newAdminApp(repo)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/admin/priorities/alice", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Priority removed", body["message"])
	_, ok := repo.priorities["alice"]
	assert.False(t, ok)

	// unranked uploaders cannot be removed
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/admin/priorities/carol", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

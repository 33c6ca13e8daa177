package controllers

import (
	"sort"
	"time"

	"github.com/dailypress/newsroom/app/models"
	"github.com/dailypress/newsroom/app/repository"
	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

// fakeNewsRepo reproduces the store semantics in memory, including the
// priority join of the admin selection queries, so handler tests can assert
// the pool partitioning end to end.
type fakeNewsRepo struct {
	items      map[uint64]*models.News
	priorities map[string]int
	nextID     uint64
}

var _ repository.NewsRepository = (*fakeNewsRepo)(nil)

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{
		items:      map[uint64]*models.News{},
		priorities: map[string]int{},
	}
}

func (f *fakeNewsRepo) Create(news *models.News) error {
	f.nextID++
	news.ID = f.nextID
	if news.SubmittedAt.IsZero() {
		news.SubmittedAt = time.Now()
	}
	clone := *news
	f.items[news.ID] = &clone
	return nil
}

func (f *fakeNewsRepo) GetByUploader(userID string) ([]models.News, error) {
	var out []models.News
	for _, item := range f.items {
		if item.UploadedBy == userID {
			clone := *item
			clone.Image = nil
			out = append(out, clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (f *fakeNewsRepo) GetAllSubmissions() ([]models.News, error) {
	var out []models.News
	for _, item := range f.items {
		clone := *item
		clone.Image = nil
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (f *fakeNewsRepo) Review(id uint64, status, reviewedBy, rejectedReason string) error {
	item, ok := f.items[id]
	if !ok || item.Status != models.NewsStatusPending {
		return apperr.NotFound("pending news", id)
	}
	now := time.Now()
	item.Status = status
	item.ReviewedAt = &now
	item.ReviewedBy = reviewedBy
	item.RejectedReason = rejectedReason
	return nil
}

func (f *fakeNewsRepo) Retract(id uint64, reason, reviewedBy string) error {
	item, ok := f.items[id]
	if !ok || item.Status == models.NewsStatusDeclined {
		return apperr.NotFound("news", id)
	}
	now := time.Now()
	item.Status = models.NewsStatusDeclined
	item.RejectedReason = reason
	item.ReviewedBy = reviewedBy
	item.ReviewedAt = &now
	return nil
}

// candidates returns the priority-ordered candidate set of the admin active
// query: approved, unpublished, due, uploader has a priority row.
func (f *fakeNewsRepo) candidates() []models.News {
	today := time.Now().Truncate(24 * time.Hour)
	var out []models.News
	for _, item := range f.items {
		if item.Status != models.NewsStatusApproved || item.IsPublished {
			continue
		}
		if item.Date.After(today.Add(24*time.Hour - time.Nanosecond)) {
			continue
		}
		if _, ok := f.priorities[item.UploadedBy]; !ok {
			continue
		}
		out = append(out, *item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		pa, pb := f.priorities[a.UploadedBy], f.priorities[b.UploadedBy]
		if pa != pb {
			return pa < pb
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.PriorityOrder != b.PriorityOrder {
			return a.PriorityOrder < b.PriorityOrder
		}
		return a.SubmittedAt.After(b.SubmittedAt)
	})
	return out
}

func (f *fakeNewsRepo) ActiveGlobal() ([]models.News, error) {
	out := f.candidates()
	if len(out) > repository.ActivePoolSize {
		out = out[:repository.ActivePoolSize]
	}
	return out, nil
}

func (f *fakeNewsRepo) ActiveForUploader(userID string) ([]models.News, error) {
	var out []models.News
	for _, item := range f.candidates() {
		if item.UploadedBy == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeNewsRepo) UpcomingGlobal() ([]models.News, error) {
	active, _ := f.ActiveGlobal()
	inActive := map[uint64]bool{}
	for _, item := range active {
		inActive[item.ID] = true
	}
	var out []models.News
	for _, item := range f.items {
		if item.Status != models.NewsStatusApproved || item.IsPublished || inActive[item.ID] {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (f *fakeNewsRepo) UpcomingForUploader(userID string) ([]models.News, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var out []models.News
	for _, item := range f.items {
		if item.UploadedBy != userID || item.Status != models.NewsStatusApproved || item.IsPublished {
			continue
		}
		if !item.Date.Truncate(24 * time.Hour).After(today) {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (f *fakeNewsRepo) PublishedGlobal() ([]models.News, error) {
	var out []models.News
	for _, item := range f.items {
		if item.Status == models.NewsStatusApproved && item.IsPublished {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(*out[j].PublishedAt)
	})
	return out, nil
}

func (f *fakeNewsRepo) PublishedForUploader(userID string) ([]models.News, error) {
	all, _ := f.PublishedGlobal()
	var out []models.News
	for _, item := range all {
		if item.UploadedBy == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeNewsRepo) MarkPublished(ids []uint64) (int64, error) {
	now := time.Now()
	var affected int64
	for _, id := range ids {
		item, ok := f.items[id]
		if !ok || item.IsPublished {
			continue
		}
		item.IsPublished = true
		item.PublishedAt = &now
		affected++
	}
	return affected, nil
}

// fakePriorityRepo backs the priority admin handlers and feeds the join
// semantics of fakeNewsRepo.
type fakePriorityRepo struct {
	repo *fakeNewsRepo
}

var _ repository.PriorityRepository = (*fakePriorityRepo)(nil)

func (f *fakePriorityRepo) Upsert(p *models.UserPriority) error {
	f.repo.priorities[p.UserID] = p.Priority
	return nil
}

func (f *fakePriorityRepo) GetByUserID(userID string) (*models.UserPriority, error) {
	p, ok := f.repo.priorities[userID]
	if !ok {
		return nil, apperr.NotFound("user priority", userID)
	}
	return &models.UserPriority{UserID: userID, Priority: p}, nil
}

func (f *fakePriorityRepo) GetAll() ([]models.UserPriority, error) {
	var out []models.UserPriority
	for userID, p := range f.repo.priorities {
		out = append(out, models.UserPriority{UserID: userID, Priority: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (f *fakePriorityRepo) Delete(userID string) error {
	delete(f.repo.priorities, userID)
	return nil
}

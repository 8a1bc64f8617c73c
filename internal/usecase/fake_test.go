package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/designpro/designpro/internal/usecase"
)

// fakeRepo is an in-memory Repository for exercising the application
// layer without Postgres.
type fakeRepo struct {
	templates map[uuid.UUID]usecase.Template
	designs   map[uuid.UUID]usecase.Design
	users     map[uuid.UUID]usecase.User
	jobs      map[uuid.UUID]usecase.Job
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		templates: make(map[uuid.UUID]usecase.Template),
		designs:   make(map[uuid.UUID]usecase.Design),
		users:     make(map[uuid.UUID]usecase.User),
		jobs:      make(map[uuid.UUID]usecase.Job),
	}
}

func (f *fakeRepo) Health() map[string]string { return map[string]string{"status": "up"} }
func (f *fakeRepo) Close() error              { return nil }

func matchesTemplate(t usecase.Template, opt usecase.ListTemplatesOption) bool {
	if opt.Category != "" && t.Category != opt.Category {
		return false
	}
	if opt.Search != "" {
		s := strings.ToLower(opt.Search)
		if !strings.Contains(strings.ToLower(t.Name), s) &&
			!strings.Contains(strings.ToLower(t.Description), s) {
			return false
		}
	}
	if len(opt.Tags) > 0 {
		found := false
		for _, want := range opt.Tags {
			for _, have := range t.Tags {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if opt.IsPremium != nil && t.IsPremium != *opt.IsPremium {
		return false
	}
	return true
}

func paginate[T any](list []T, skip, limit int) []T {
	if skip >= len(list) {
		return nil
	}
	list = list[skip:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (f *fakeRepo) ListTemplates(_ context.Context, opt usecase.ListTemplatesOption) ([]usecase.Template, int, error) {
	var all []usecase.Template
	for _, t := range f.templates {
		if matchesTemplate(t, opt) {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	total := len(all)
	return paginate(all, opt.Skip, opt.Limit), total, nil
}

func (f *fakeRepo) GetTemplateByID(_ context.Context, id uuid.UUID) (usecase.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return usecase.Template{}, usecase.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) CreateTemplate(_ context.Context, t usecase.Template) (usecase.Template, error) {
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	f.templates[t.ID] = t
	return t, nil
}

func (f *fakeRepo) UpdateTemplate(_ context.Context, t usecase.Template) (usecase.Template, error) {
	prev, ok := f.templates[t.ID]
	if !ok {
		return usecase.Template{}, usecase.ErrNotFound
	}
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	f.templates[t.ID] = t
	return t, nil
}

func (f *fakeRepo) DeleteTemplate(_ context.Context, id uuid.UUID) error {
	if _, ok := f.templates[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeRepo) ListTemplateCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var categories []string
	for _, t := range f.templates {
		if _, ok := seen[t.Category]; !ok {
			seen[t.Category] = struct{}{}
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (f *fakeRepo) GetTemplateStats(_ context.Context) (usecase.TemplateStats, error) {
	var st usecase.TemplateStats
	counts := make(map[string]int)
	for _, t := range f.templates {
		st.Total++
		if t.IsPremium {
			st.Premium++
		} else {
			st.Free++
		}
		counts[t.Category]++
	}
	for c, n := range counts {
		st.Categories = append(st.Categories, usecase.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(st.Categories, func(i, j int) bool {
		return st.Categories[i].Count > st.Categories[j].Count
	})
	return st, nil
}

func matchesDesign(d usecase.Design, opt usecase.ListDesignsOption) bool {
	if opt.UserID != "" && d.UserID != opt.UserID {
		return false
	}
	if opt.Search != "" {
		s := strings.ToLower(opt.Search)
		if !strings.Contains(strings.ToLower(d.Name), s) &&
			!strings.Contains(strings.ToLower(d.Description), s) {
			return false
		}
	}
	if len(opt.Tags) > 0 {
		found := false
		for _, want := range opt.Tags {
			for _, have := range d.Tags {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if opt.IsFavorite != nil && d.IsFavorite != *opt.IsFavorite {
		return false
	}
	return true
}

func (f *fakeRepo) filterDesigns(opt usecase.ListDesignsOption) []usecase.Design {
	var all []usecase.Design
	for _, d := range f.designs {
		if matchesDesign(d, opt) {
			all = append(all, d)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	return all
}

func (f *fakeRepo) ListDesigns(_ context.Context, opt usecase.ListDesignsOption) ([]usecase.Design, int, error) {
	all := f.filterDesigns(opt)
	return paginate(all, opt.Skip, opt.Limit), len(all), nil
}

func (f *fakeRepo) CountDesigns(_ context.Context, opt usecase.ListDesignsOption) (int, error) {
	return len(f.filterDesigns(opt)), nil
}

func (f *fakeRepo) GetDesignByID(_ context.Context, id uuid.UUID) (usecase.Design, error) {
	d, ok := f.designs[id]
	if !ok {
		return usecase.Design{}, usecase.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) CreateDesign(_ context.Context, d usecase.Design) (usecase.Design, error) {
	d.ID = uuid.New()
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	f.designs[d.ID] = d
	return d, nil
}

func (f *fakeRepo) UpdateDesign(_ context.Context, id uuid.UUID, opt usecase.UpdateDesignOption) (usecase.Design, error) {
	d, ok := f.designs[id]
	if !ok {
		return usecase.Design{}, usecase.ErrNotFound
	}
	if opt.Name != nil {
		d.Name = *opt.Name
	}
	if opt.Description != nil {
		d.Description = *opt.Description
	}
	if opt.Elements != nil {
		d.Elements = *opt.Elements
	}
	if opt.Thumbnail != nil {
		d.Thumbnail = *opt.Thumbnail
	}
	if opt.Tags != nil {
		d.Tags = *opt.Tags
	}
	if opt.IsFavorite != nil {
		d.IsFavorite = *opt.IsFavorite
	}
	d.UpdatedAt = time.Now().UTC()
	f.designs[id] = d
	return d, nil
}

func (f *fakeRepo) DeleteDesign(_ context.Context, id uuid.UUID) error {
	if _, ok := f.designs[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(f.designs, id)
	return nil
}

func (f *fakeRepo) ToggleDesignFavorite(_ context.Context, id uuid.UUID) (usecase.Design, error) {
	d, ok := f.designs[id]
	if !ok {
		return usecase.Design{}, usecase.ErrNotFound
	}
	d.IsFavorite = !d.IsFavorite
	d.UpdatedAt = time.Now().UTC()
	f.designs[id] = d
	return d, nil
}

func (f *fakeRepo) ListUsers(_ context.Context, opt usecase.ListUsersOption) ([]usecase.User, int, error) {
	var all []usecase.User
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	total := len(all)
	return paginate(all, opt.Skip, opt.Limit), total, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (usecase.User, error) {
	u, ok := f.users[id]
	if !ok {
		return usecase.User{}, usecase.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u usecase.User) (usecase.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return usecase.User{}, usecase.ErrConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, u usecase.User) (usecase.User, error) {
	prev, ok := f.users[u.ID]
	if !ok {
		return usecase.User{}, usecase.ErrNotFound
	}
	u.CreatedAt = prev.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) GetJobByID(_ context.Context, id uuid.UUID) (usecase.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return usecase.Job{}, usecase.ErrNotFound
	}
	return j, nil
}

func (f *fakeRepo) CreateJob(_ context.Context, j usecase.Job) (usecase.Job, error) {
	j.ID = uuid.New()
	j.CreatedAt = time.Now().UTC()
	j.UpdatedAt = j.CreatedAt
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeRepo) UpdateJob(_ context.Context, j usecase.Job) (usecase.Job, error) {
	if _, ok := f.jobs[j.ID]; !ok {
		return usecase.Job{}, usecase.ErrNotFound
	}
	j.UpdatedAt = time.Now().UTC()
	f.jobs[j.ID] = j
	return j, nil
}

// fakeStorage records stored objects in memory.
type fakeStorage struct {
	objects map[string][]byte
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) GetPublicURL(context.Context) (string, error) {
	return "https://cdn.example.com", nil
}

func (f *fakeStorage) GetTempUploadURL(_ context.Context, name string) (string, error) {
	return "https://storage.example.com/temp/" + name, nil
}

func (f *fakeStorage) PutObject(_ context.Context, path, _ string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[path] = data
	return nil
}

func (f *fakeStorage) RemoveObject(_ context.Context, path string) error {
	if _, ok := f.objects[path]; !ok {
		return errors.New("no such object")
	}
	delete(f.objects, path)
	return nil
}

func (f *fakeStorage) GetPresignedURL(_ context.Context, path string) (string, error) {
	return fmt.Sprintf("https://storage.example.com/%s?sig=abc", path), nil
}

type fakeMail struct {
	sent []usecase.Email
	err  error
}

func (f *fakeMail) SendEmail(_ context.Context, e usecase.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

type fakeQueue struct {
	enqueued []string
	err      error
}

func (f *fakeQueue) EnqueueJob(_ context.Context, jobID uuid.UUID, jobType string, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, jobType+":"+jobID.String())
	return nil
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// ---------------------------------------------------------------------------
// shared test doubles
// ---------------------------------------------------------------------------

type mockBlogService struct {
	listFunc     func(ctx context.Context, opts model.BlogListOptions) (*model.BlogPage, error)
	getFunc      func(ctx context.Context, slug string) (*model.BlogPost, error)
	listTagsFunc func(ctx context.Context) ([]string, error)
	createFunc   func(ctx context.Context, in service.CreatePostInput) (*model.BlogPost, error)
	updateFunc   func(ctx context.Context, id string, in service.CreatePostInput) (*model.BlogPost, error)
	deleteFunc   func(ctx context.Context, id string) (string, error)
	clearFunc    func(ctx context.Context) (int64, error)
}

func (m *mockBlogService) ListPublished(ctx context.Context, opts model.BlogListOptions) (*model.BlogPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return &model.BlogPage{Posts: []model.BlogPost{}, Pagination: model.NewPagination(1, 10, 0)}, nil
}

func (m *mockBlogService) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, slug)
	}
	return nil, repository.ErrNotFound
}

func (m *mockBlogService) ListTags(ctx context.Context) ([]string, error) {
	if m.listTagsFunc != nil {
		return m.listTagsFunc(ctx)
	}
	return nil, nil
}

func (m *mockBlogService) Create(ctx context.Context, in service.CreatePostInput) (*model.BlogPost, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.BlogPost{Title: in.Title}, nil
}

func (m *mockBlogService) Update(ctx context.Context, id string, in service.CreatePostInput) (*model.BlogPost, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return nil, repository.ErrNotFound
}

func (m *mockBlogService) Delete(ctx context.Context, id string) (string, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return "", repository.ErrNotFound
}

func (m *mockBlogService) ClearAll(ctx context.Context) (int64, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return 0, nil
}

type mockContactService struct {
	submitFunc func(ctx context.Context, in service.SubmitContactInput, sourceAddr string) (*model.Contact, error)
	listFunc   func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)
}

func (m *mockContactService) Submit(ctx context.Context, in service.SubmitContactInput, sourceAddr string) (*model.Contact, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in, sourceAddr)
	}
	return &model.Contact{Name: in.Name}, nil
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return &model.ContactPage{Contacts: []model.Contact{}, Pagination: model.NewPagination(1, 10, 0)}, nil
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

const testAdminKey = "test-admin-key"

// newTestRouter wires mocks through the full router so tests exercise the
// real middleware chain and route table.
func newTestRouter(blog *mockBlogService, contacts *mockContactService, db *stubPinger, dev bool) http.Handler {
	if blog == nil {
		blog = &mockBlogService{}
	}
	if contacts == nil {
		contacts = &mockContactService{}
	}
	if db == nil {
		db = &stubPinger{}
	}
	return Routes(blog, contacts, db, Options{
		AdminKey:       testAdminKey,
		Dev:            dev,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

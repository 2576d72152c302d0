package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elimu-lms/elimu/core/editing"
	"github.com/elimu-lms/elimu/services/api"
	testutil "github.com/elimu-lms/elimu/tests"
)

func testClient(t *testing.T, backend http.Handler) (*api.Client, api.Endpoints) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return api.NewClient(new(testutil.NotifierRecorder)), api.NewEndpoints(srv.URL + "/api")
}

func Test_MountCategories_localSeedsFirstRead(t *testing.T) {
	client, eps := testClient(t, http.NotFoundHandler())
	screen, err := MountCategories(context.Background(), client, eps, testutil.OpenKV(t), "")
	assert.NoError(t, err)

	assert.Equal(t, editing.SourceLocal, screen.SourceName())
	assert.Equal(t, SeedCategories(), screen.Items())
}

func Test_MountCategories_remoteWithToken(t *testing.T) {
	client, eps := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"categories":[{"_id":"9","category_name":"AI"}]}`))
	}))

	screen, err := MountCategories(context.Background(), client, eps, testutil.OpenKV(t), "tok-123")
	assert.NoError(t, err)
	assert.Equal(t, editing.SourceRemote, screen.SourceName())
	assert.Equal(t, []Category{{ID: "9", Name: "AI"}}, screen.Items())
}

func Test_CategoryScreen_createValidatesName(t *testing.T) {
	client, eps := testClient(t, http.NotFoundHandler())
	screen, err := MountCategories(context.Background(), client, eps, testutil.OpenKV(t), "")
	assert.NoError(t, err)

	_, err = screen.CreateCategory(context.Background(), CategoryForm{Name: "   "})
	assert.Error(t, err)
	assert.Len(t, screen.Items(), len(SeedCategories()))
}

func Test_CategoryScreen_localCreatePrepends(t *testing.T) {
	client, eps := testClient(t, http.NotFoundHandler())
	screen, err := MountCategories(context.Background(), client, eps, testutil.OpenKV(t), "")
	assert.NoError(t, err)

	created, err := screen.CreateCategory(context.Background(), CategoryForm{Name: "Security"})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	items := screen.Items()
	assert.Len(t, items, len(SeedCategories())+1)
	assert.Equal(t, created, items[0])
}

func Test_CategoryScreen_updateKeepsCreatedAt(t *testing.T) {
	client, eps := testClient(t, http.NotFoundHandler())
	screen, err := MountCategories(context.Background(), client, eps, testutil.OpenKV(t), "")
	assert.NoError(t, err)

	updated, err := screen.UpdateCategory(context.Background(), "1", CategoryForm{Name: "Web Dev"})
	assert.NoError(t, err)
	assert.Equal(t, Category{ID: "1", Name: "Web Dev", CreatedAt: "2024-01-01"}, updated)
	assert.Equal(t, updated, screen.Items()[0])
}

func Test_CategoryScreen_failedRemoteDeleteKeepsList(t *testing.T) {
	client, eps := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"categories":[{"_id":"9","category_name":"AI"}]}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"not allowed"}`))
	}))

	screen, err := MountCategories(context.Background(), client, eps, testutil.OpenKV(t), "tok-123")
	assert.NoError(t, err)

	err = screen.DeleteCategory(context.Background(), "9")
	var apiErr *api.Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []Category{{ID: "9", Name: "AI"}}, screen.Items())
}

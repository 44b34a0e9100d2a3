package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/testutil"
)

func TestCategoryHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	_, adminToken, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).BuildAndLogin(t, ts)
	_, writerToken, _ := testutil.NewUserBuilder().WithRole(domain.RoleWriter).BuildAndLogin(t, ts)

	createCategory := func(t *testing.T, name, token string) *http.Response {
		t.Helper()
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/categories/"),
			map[string]string{"name": name}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("admin creates a category", func(t *testing.T) {
		resp := createCategory(t, "Science", adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			Name string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "science", result.Name)
	})

	t.Run("duplicate ignoring case", func(t *testing.T) {
		resp := createCategory(t, "SCIENCE", adminToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("empty name", func(t *testing.T) {
		resp := createCategory(t, "", adminToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("writer is rejected", func(t *testing.T) {
		resp := createCategory(t, "forbidden", writerToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		resp := createCategory(t, "anonymous", "")
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	_, adminToken, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).BuildAndLogin(t, ts)
	writer, _ := testutil.NewUserBuilder().WithRole(domain.RoleWriter).Build(t, ts.DB.DB)

	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)
	article := testutil.NewArticleBuilder(writer, category).Build(t, ts.DB.DB)

	deleteCategory := func(t *testing.T) *http.Response {
		t.Helper()
		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL("/categories/"+category.ID.String()), nil, adminToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("blocked while referenced", func(t *testing.T) {
		resp := deleteCategory(t)
		resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("succeeds after the article is removed", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL("/articles/"+article.ID.String()), nil, adminToken)
		articleResp, err := client.Do(req)
		require.NoError(t, err)
		articleResp.Body.Close()
		require.Equal(t, http.StatusOK, articleResp.StatusCode)

		resp := deleteCategory(t)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestCategoryHandler_PublicReads(t *testing.T) {
	ts := testutil.NewTestServer(t)

	first := testutil.NewCategoryBuilder().WithName("alpha").Build(t, ts.DB.DB)
	testutil.NewCategoryBuilder().WithName("beta").Build(t, ts.DB.DB)

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/categories/"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []struct {
			Name string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &categories)
		require.Len(t, categories, 2)
		// Listed in name order.
		assert.Equal(t, "alpha", categories[0].Name)
	})

	t.Run("get by id", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/categories/" + first.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var category struct {
			Name string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &category)
		assert.Equal(t, "alpha", category.Name)
	})

	t.Run("missing category", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/categories/00000000-0000-0000-0000-000000000000"))
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

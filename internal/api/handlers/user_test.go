package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/testutil"
)

func TestUserHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	user, token, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	t.Run("existing user", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "GET",
			ts.APIURL("/users/"+user.ID.String()), nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			ID           string `json:"id"`
			Username     string `json:"username"`
			PasswordHash string `json:"passwordHash"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.Username, result.Username)
		// Hash and refresh token never serialize.
		assert.Empty(t, result.PasswordHash)
	})

	t.Run("missing user", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "GET",
			ts.APIURL("/users/00000000-0000-0000-0000-000000000000"), nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/users/" + user.ID.String()))
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUserHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	_, readerToken, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	_, adminToken, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).BuildAndLogin(t, ts)

	t.Run("admin lists users", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "GET", ts.APIURL("/users/"), nil, adminToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []struct {
			ID string `json:"id"`
		}
		testutil.AssertJSONResponse(t, resp, &users)
		assert.Len(t, users, 2)
	})

	t.Run("reader is rejected", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "GET", ts.APIURL("/users/"), nil, readerToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestUserHandler_Edit(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	user, token, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	other, _, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	t.Run("edit own profile", func(t *testing.T) {
		req := testutil.CreateMultipartRequest(t, "PUT",
			ts.APIURL("/users/"+user.ID.String()),
			map[string]string{"fullName": "Renamed Person"}, nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			FullName string `json:"fullName"`
			Username string `json:"username"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "Renamed Person", result.FullName)
		assert.Equal(t, user.Username, result.Username)
	})

	t.Run("upload profile picture", func(t *testing.T) {
		file := &testutil.FormFile{
			Field:       "profilePicture",
			Filename:    "avatar.jpg",
			ContentType: "image/jpeg",
			Data:        []byte("fake jpeg bytes"),
		}
		req := testutil.CreateMultipartRequest(t, "PUT",
			ts.APIURL("/users/"+user.ID.String()), nil, file, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			ProfilePicture string `json:"profilePicture"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.NotEqual(t, ts.Config.DefaultProfilePictureURL, result.ProfilePicture)
		assert.Equal(t, 1, ts.Store.Len())
	})

	t.Run("cannot edit another account", func(t *testing.T) {
		req := testutil.CreateMultipartRequest(t, "PUT",
			ts.APIURL("/users/"+other.ID.String()),
			map[string]string{"fullName": "Hijacked"}, nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	_, adminToken, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).BuildAndLogin(t, ts)

	t.Run("owner deletes own account", func(t *testing.T) {
		target, token, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL("/users/"+target.ID.String()), nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// Self-deletion clears the refresh cookie.
		for _, c := range resp.Cookies() {
			if c.Name == "refreshToken" {
				assert.Empty(t, c.Value)
				assert.Negative(t, c.MaxAge)
			}
		}
	})

	t.Run("admin deletes another account", func(t *testing.T) {
		target, _, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL("/users/"+target.ID.String()), nil, adminToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		target, _, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		_, strangerToken, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, "DELETE",
			ts.APIURL("/users/"+target.ID.String()), nil, strangerToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestUserHandler_UpdateRole(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := &http.Client{}

	admin, adminToken, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).BuildAndLogin(t, ts)
	reader, readerToken, _ := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	updateRole := func(t *testing.T, targetID, newRole, token string) *http.Response {
		t.Helper()
		req := testutil.CreateAuthenticatedRequest(t, "PUT",
			ts.APIURL("/users/role/"+targetID),
			map[string]string{"newRole": newRole}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("admin promotes a reader", func(t *testing.T) {
		resp := updateRole(t, reader.ID.String(), "writer", adminToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, reader.ID.String(), result.ID)
		assert.Equal(t, "writer", result.Role)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		resp := updateRole(t, reader.ID.String(), "admin", readerToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("invalid role name", func(t *testing.T) {
		resp := updateRole(t, reader.ID.String(), "superuser", adminToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("self-demotion is rejected", func(t *testing.T) {
		resp := updateRole(t, admin.ID.String(), "reader", adminToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing target", func(t *testing.T) {
		resp := updateRole(t, "00000000-0000-0000-0000-000000000000", "writer", adminToken)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

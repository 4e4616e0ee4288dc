package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/audiopanel/backend/internal/domain"
	"github.com/audiopanel/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_AccessControl(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, userCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	t.Run("anonymous", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/admin/stats"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Access denied. No token provided.")
	})

	t.Run("regular user", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/admin/stats"), userCookie, nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Admin access required")
	})
}

func TestAdmin_Stats(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, adminCookie := testutil.NewUserBuilder().AsAdmin().BuildAndLogin(t, ts)

	user, _ := testutil.NewUserBuilder().Build(t, ts.DB)
	for i := 0; i < 3; i++ {
		testutil.NewProductBuilder(user).Build(t, ts.DB)
	}

	resp := doJSON(t, http.MethodGet, ts.APIURL("/admin/stats"), adminCookie, nil)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var stats struct {
		TotalUsers     int64 `json:"totalUsers"`
		TotalProducts  int64 `json:"totalProducts"`
		RecentProducts []struct {
			ID   string `json:"id"`
			User *struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"recentProducts"`
	}
	testutil.AssertJSONResponse(t, resp, &stats)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalProducts)
	require.Len(t, stats.RecentProducts, 3)
	for _, p := range stats.RecentProducts {
		require.NotNil(t, p.User)
		assert.Equal(t, user.Email, p.User.Email)
	}
}

func TestAdmin_Users(t *testing.T) {
	ts := testutil.NewTestServer(t)
	admin, adminCookie := testutil.NewUserBuilder().AsAdmin().BuildAndLogin(t, ts)
	user, _ := testutil.NewUserBuilder().Build(t, ts.DB)

	t.Run("list with product counts", func(t *testing.T) {
		testutil.NewProductBuilder(user).Build(t, ts.DB)

		resp := doJSON(t, http.MethodGet, ts.APIURL("/admin/users"), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var page struct {
			Data []struct {
				ID           string `json:"id"`
				Email        string `json:"email"`
				ProductCount int64  `json:"productCount"`
			} `json:"data"`
		}
		testutil.AssertJSONResponse(t, resp, &page)
		require.Len(t, page.Data, 2)

		counts := map[string]int64{}
		for _, u := range page.Data {
			counts[u.Email] = u.ProductCount
		}
		assert.Equal(t, int64(1), counts[user.Email])
		assert.Equal(t, int64(0), counts[admin.Email])
	})

	t.Run("cannot delete yourself", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/admin/users/"+admin.ID.String()), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Cannot delete yourself")
	})

	t.Run("cannot demote yourself", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.APIURL("/admin/users/"+admin.ID.String()+"/role"),
			adminCookie, strings.NewReader(`{"role":"USER"}`))
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Cannot demote yourself")
	})

	t.Run("invalid role on own account", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.APIURL("/admin/users/"+admin.ID.String()+"/role"),
			adminCookie, strings.NewReader(`{"role":"SUPERUSER"}`))
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid role")
	})

	t.Run("invalid role", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.APIURL("/admin/users/"+user.ID.String()+"/role"),
			adminCookie, strings.NewReader(`{"role":"SUPERUSER"}`))
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid role")
	})

	t.Run("promote user", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.APIURL("/admin/users/"+user.ID.String()+"/role"),
			adminCookie, strings.NewReader(`{"role":"ADMIN"}`))
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body struct {
			Message string `json:"message"`
			User    struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "ADMIN", body.User.Role)
	})

	t.Run("delete another user", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/admin/users/"+user.ID.String()), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var count int64
		require.NoError(t, ts.DB.Model(&domain.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete missing user", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/admin/users/"+user.ID.String()), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "User not found")
	})
}

func TestAdmin_Products(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, adminCookie := testutil.NewUserBuilder().AsAdmin().BuildAndLogin(t, ts)

	alice, _ := testutil.NewUserBuilder().Build(t, ts.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, ts.DB)

	p1 := testutil.NewProductBuilder(alice).Build(t, ts.DB)
	testutil.NewProductBuilder(bob).Build(t, ts.DB)

	t.Run("list spans all owners", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/admin/products"), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var page productPageJSON
		testutil.AssertJSONResponse(t, resp, &page)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, int64(2), page.Pagination.Total)
	})

	t.Run("delete any product", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/admin/products/"+p1.ID.String()), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var count int64
		require.NoError(t, ts.DB.Model(&domain.Product{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete missing product", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/admin/products/"+p1.ID.String()), adminCookie, nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Product not found")
	})
}

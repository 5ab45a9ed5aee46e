package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/internal/shop/store/drivers/sqlite"
	"github.com/aussiebroadwan/tradepost/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	accessSigner, err := jwtx.NewSignerHS256([]byte("access-secret"))
	require.NoError(t, err)
	accessVerifier, err := jwtx.NewVerifierHS256([]byte("access-secret"))
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256([]byte("refresh-secret"))
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256([]byte("refresh-secret"))
	require.NoError(t, err)

	tokens := &service.TokenService{
		Store:           st,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		AccessTTL:       jwtx.DefaultAccessTokenTTL,
		RefreshTTL:      jwtx.DefaultRefreshTokenTTL,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(accessVerifier, "test", st, logger)
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	r.ProductService = &service.ProductService{Store: st}
	r.CartService = &service.CartService{Store: st}
	r.ApplyRoutes()

	return r
}

type envelope struct {
	Msg    string          `json:"msg"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func signupAndLogin(t *testing.T, r *Router, username, email, password string) (access, refresh string) {
	t.Helper()

	rec, _ := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair.AccessToken, pair.RefreshToken
}

func TestAuthEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	// signup
	rec, env := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice1", "email": "a@x.com", "password": "p@ssw0rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "success", env.Status)
	require.Contains(t, string(env.Data), `"username":"alice1"`)

	// login
	rec, env = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice1", "password": "p@ssw0rd",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	// change password using the access token
	rec, _ = doJSON(t, r, http.MethodPost, "/api/auth/account", pair.AccessToken, map[string]string{
		"oldPassword": "p@ssw0rd", "newPassword": "n3wP@ss!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// the old password no longer works
	rec, env = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice1", "password": "p@ssw0rd",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Failed", env.Status)

	// the new password does
	rec, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice1", "password": "n3wP@ss!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name    string
		body    map[string]string
		wantErr string
	}{
		{
			name:    "short password",
			body:    map[string]string{"username": "alice1", "email": "a@x.com", "password": "short"},
			wantErr: "password too short",
		},
		{
			name:    "password without symbol",
			body:    map[string]string{"username": "alice1", "email": "a@x.com", "password": "abcdefg1"},
			wantErr: "Password must not contain spaces and have at least 8 characters including one special character",
		},
		{
			name:    "bad email",
			body:    map[string]string{"username": "alice1", "email": "nope", "password": "p@ssw0rd"},
			wantErr: "Enter a valid email",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "Failed", env.Status)
			require.Equal(t, tc.wantErr, env.Error)
		})
	}
}

func TestLoginFailureModes(t *testing.T) {
	r := newTestRouter(t)
	signupAndLogin(t, r, "alice1", "a@x.com", "p@ssw0rd")

	t.Run("unknown username is a 400", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "nobody", "password": "p@ssw0rd",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		rec, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "alice1", "password": "wrongpass!",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Failed", env.Status)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	r := newTestRouter(t)
	_, refresh := signupAndLogin(t, r, "alice1", "a@x.com", "p@ssw0rd")

	rec, env := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pair struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	require.NotEqual(t, refresh, pair.RefreshToken)

	t.Run("old token is rejected after rotation", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", map[string]string{
			"refreshToken": refresh,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", map[string]string{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestGates(t *testing.T) {
	r := newTestRouter(t)

	t.Run("protected route without token", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/shop/items", "", map[string]string{
			"name": "lamp", "price": "19.99",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("anon-allowed route without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop/items", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anon-allowed route with garbage token fails closed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop/items", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestShopFlow(t *testing.T) {
	r := newTestRouter(t)
	sellerToken, _ := signupAndLogin(t, r, "seller1", "seller@x.com", "p@ssw0rd")
	buyerToken, _ := signupAndLogin(t, r, "buyer1", "buyer@x.com", "p@ssw0rd")

	// seller lists a product
	rec, env := doJSON(t, r, http.MethodPost, "/api/shop/items", sellerToken, map[string]string{
		"name": "lamp", "description": "a desk lamp", "price": "19.99",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	t.Run("invalid price rejected", func(t *testing.T) {
		rec, env := doJSON(t, r, http.MethodPost, "/api/shop/items", sellerToken, map[string]string{
			"name": "junk", "price": "free",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "failed", env.Status)
		require.Equal(t, "Invalid Price", env.Error)
	})

	t.Run("buyer browses and sees the listing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop/items", nil)
		req.Header.Set("Authorization", "Bearer "+buyerToken)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var page struct {
			TotalProducts int `json:"TotalProducts"`
			Products      []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"Products"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Equal(t, 1, page.TotalProducts)
		require.Equal(t, "lamp", page.Products[0].Name)
	})

	t.Run("seller does not see their own listing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop/items", nil)
		req.Header.Set("Authorization", "Bearer "+sellerToken)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		var page struct {
			TotalProducts int `json:"TotalProducts"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Zero(t, page.TotalProducts)
	})

	t.Run("non-owner cannot modify", func(t *testing.T) {
		rec, _ := doJSON(t, r, http.MethodPatch, "/api/shop/items/"+created.ID, buyerToken, map[string]string{
			"price": "0.01",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("checkout with stale price rejected", func(t *testing.T) {
		rec, env := doJSON(t, r, http.MethodPost, "/api/shop/items/cart", buyerToken, map[string]any{
			"products": []map[string]string{{"product_id": created.ID, "price": "15.00"}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Price_changed", env.Error)

		// the body names the product and its current price
		var drift struct {
			ProductIDs []struct {
				ID       string `json:"id"`
				NewPrice string `json:"newPrice"`
			} `json:"productIds"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &drift))
		require.Len(t, drift.ProductIDs, 1)
		require.Equal(t, created.ID, drift.ProductIDs[0].ID)
		require.Equal(t, "19.99", drift.ProductIDs[0].NewPrice)
	})

	t.Run("checkout succeeds at listed price", func(t *testing.T) {
		rec, env := doJSON(t, r, http.MethodPost, "/api/shop/items/cart", buyerToken, map[string]any{
			"products": []map[string]string{{"product_id": created.ID, "price": "19.99"}},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "success", env.Status)
		require.Contains(t, string(env.Data), `"productName":"lamp"`)
	})

	t.Run("own product checkout rejected", func(t *testing.T) {
		rec2, env2 := doJSON(t, r, http.MethodPost, "/api/shop/items", sellerToken, map[string]string{
			"name": "desk", "price": "50.00",
		})
		require.Equal(t, http.StatusCreated, rec2.Code)
		var desk struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env2.Data, &desk))

		rec3, env3 := doJSON(t, r, http.MethodPost, "/api/shop/items/cart", sellerToken, map[string]any{
			"products": []map[string]string{{"product_id": desk.ID, "price": "50.00"}},
		})
		require.Equal(t, http.StatusBadRequest, rec3.Code)
		require.Equal(t, "You cannot buy your own product", env3.Error)
	})

	t.Run("history views", func(t *testing.T) {
		for path, want := range map[string]int{
			"/api/shop/history/sold":      1,
			"/api/shop/history/sale":      1, // the unsold desk
		} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", "Bearer "+sellerToken)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var page struct {
				TotalProducts int `json:"TotalProducts"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
			require.Equal(t, want, page.TotalProducts, path)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/shop/history/purchased", nil)
		req.Header.Set("Authorization", "Bearer "+buyerToken)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		var page struct {
			TotalProducts int `json:"TotalProducts"`
			Products      []struct {
				Name string `json:"name"`
			} `json:"Products"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Equal(t, 1, page.TotalProducts)
		require.Equal(t, "lamp", page.Products[0].Name)
	})
}

func TestPagination(t *testing.T) {
	r := newTestRouter(t)
	sellerToken, _ := signupAndLogin(t, r, "seller1", "seller@x.com", "p@ssw0rd")

	for i := 0; i < 12; i++ {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/shop/items", sellerToken, map[string]string{
			"name": fmt.Sprintf("item-%02d", i), "price": "5.00",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	fetch := func(query string) (page struct {
		HasNext       bool `json:"hasNext"`
		HasPrevious   bool `json:"hasPrevious"`
		Page          int  `json:"Page"`
		PageCount     int  `json:"PageCount"`
		TotalProducts int  `json:"TotalProducts"`
		Products      []struct {
			Name string `json:"name"`
		} `json:"Products"`
	}) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop/items"+query, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		return page
	}

	t.Run("defaults to page 1 of 10", func(t *testing.T) {
		page := fetch("")
		require.Equal(t, 1, page.Page)
		require.Len(t, page.Products, 10)
		require.Equal(t, 12, page.TotalProducts)
		require.Equal(t, 2, page.PageCount)
		require.True(t, page.HasNext)
		require.False(t, page.HasPrevious)
	})

	t.Run("last page is short", func(t *testing.T) {
		page := fetch("?page=2")
		require.Len(t, page.Products, 2)
		require.False(t, page.HasNext)
		require.True(t, page.HasPrevious)
	})

	t.Run("custom page size", func(t *testing.T) {
		page := fetch("?page=1&page_size=5")
		require.Len(t, page.Products, 5)
		require.Equal(t, 3, page.PageCount)
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/livez", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Contains(t, rec.Body.String(), `"status":"ok"`)
	}
}

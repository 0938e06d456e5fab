package handlers

import (
	"net/http"
	"testing"
)

func TestGetCategoriesList(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(jsonRequest("GET", "/api/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Errorf("expected 2 categories, got %d", len(result))
	}
}

func TestGetCategoriesStorefrontDown(t *testing.T) {
	env := setupTestEnv(t)
	env.storefront.handle("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `not json`)
	})

	w := env.do(jsonRequest("GET", "/api/categories", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["error"] != "Failed to fetch categories" {
		t.Errorf("expected fallback message, got %s", w.Body.String())
	}
}

func TestCreateCategory(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.seedSession(t, "admin")

	w := env.do(authRequest("POST", "/api/admin/categories", map[string]string{"name": "Hats"}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["slug"] != "hats" {
		t.Errorf("unexpected category: %s", w.Body.String())
	}

	req, ok := env.storefront.last("POST", "/categories")
	if !ok {
		t.Fatal("expected storefront to receive the category")
	}
	if req.Auth != "Bearer "+storefrontToken {
		t.Errorf("expected storefront token to be forwarded, got %q", req.Auth)
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.seedSession(t, "admin")

	w := env.do(authRequest("POST", "/api/admin/categories", map[string]string{}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["error"] != "name is required" {
		t.Errorf("unexpected error: %s", w.Body.String())
	}
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.seedSession(t, "admin")

	w := env.do(authRequest("DELETE", "/api/admin/categories/1", nil, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["error"] != "Kategori masih memiliki produk" {
		t.Errorf("expected storefront message, got %s", w.Body.String())
	}
}

func TestDeleteCategory(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.seedSession(t, "admin")

	w := env.do(authRequest("DELETE", "/api/admin/categories/2", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSlugPreview(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(jsonRequest("GET", "/api/categories/slug-preview?name=Running%20Shoes!", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["slug"] != "running-shoes" {
		t.Errorf("unexpected slug: %s", w.Body.String())
	}
}

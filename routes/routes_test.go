package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"storefront-admin/apiclient"
	"storefront-admin/models"
	"storefront-admin/preview"
	"storefront-admin/session"
	"storefront-admin/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	// One connection keeps every query on the same in-memory database.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.AdminSession{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *session.Store) {
	storefront := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/categories":
			w.Write([]byte(`[{"id":1,"name":"Shoes","slug":"shoes"}]`))
		case "/products/public":
			w.Write([]byte(`{"data":[],"pagination":{"currentPage":1,"totalPages":1,"totalItems":0,"limit":10}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	}))
	t.Cleanup(storefront.Close)

	sessions := session.NewStore(setupTestDB(t))
	r := gin.New()
	SetupRoutes(r, Dependencies{
		API:      apiclient.New(storefront.URL, "web-key", 5*time.Second),
		Sessions: sessions,
		Drafts:   utils.NewDraftStore(time.Hour),
		Previews: preview.NewRegistry(),
	})
	return r, sessions
}

func tokenFor(t *testing.T, sessions *session.Store, role string) string {
	sess, err := sessions.Create("someone", role, "backend-token", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, err := utils.GenerateToken(sess.ID, sess.Username, sess.Role, sess.ExpiresAt)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublicCategoriesRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSlugPreviewRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories/slug-preview?name=Running+Shoes", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRouteRequiresSession(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/products", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRouteBlocksNonAdmin(t *testing.T) {
	r, sessions := setupRouter(t)
	token := tokenFor(t, sessions, "editor")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminProductsRoute(t *testing.T) {
	r, sessions := setupRouter(t)
	token := tokenFor(t, sessions, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProductDraftRoutes(t *testing.T) {
	r, sessions := setupRouter(t)
	token := tokenFor(t, sessions, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/product-drafts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPreviewRouteRequiresSession(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/previews/00000000-0000-0000-0000-000000000000", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/handlers"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/middleware"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/services"
	"github.com/inoxmetalart/backend/internal/types"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.User{}, &types.Product{}, &types.GalleryItem{},
		&types.Project{}, &types.Material{}, &types.Application{},
	); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	storage := services.NewStorageService(log, t.TempDir())
	if err := storage.Init(); err != nil {
		t.Fatalf("storage init: %v", err)
	}

	userRepo := repos.NewUserRepo(gdb, log)
	productRepo := repos.NewProductRepo(gdb, log)
	galleryRepo := repos.NewGalleryRepo(gdb, log)
	projectRepo := repos.NewProjectRepo(gdb, log)
	materialRepo := repos.NewMaterialRepo(gdb, log)
	applicationRepo := repos.NewApplicationRepo(gdb, log)

	authService := services.NewAuthService(gdb, log, userRepo, "test-secret", time.Hour)
	productService := services.NewProductService(gdb, log, productRepo, storage)
	galleryService := services.NewGalleryService(gdb, log, galleryRepo, storage)
	projectService := services.NewProjectService(gdb, log, projectRepo, storage)
	materialService := services.NewMaterialService(gdb, log, materialRepo, storage)
	applicationService := services.NewApplicationService(gdb, log, applicationRepo, storage, nil, nil)

	return NewRouter(RouterConfig{
		AuthHandler:        handlers.NewAuthHandler(authService),
		AuthMiddleware:     middleware.NewAuthMiddleware(log, authService),
		ProductHandler:     handlers.NewProductHandler(log, productService),
		GalleryHandler:     handlers.NewGalleryHandler(log, galleryService),
		ProjectHandler:     handlers.NewProjectHandler(log, projectService),
		MaterialHandler:    handlers.NewMaterialHandler(log, materialService),
		ApplicationHandler: handlers.NewApplicationHandler(log, applicationService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encoding payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Admin", "email": "admin@example.com", "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "admin@example.com", "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	return resp.AccessToken
}

func TestApplicationSubmitAndList(t *testing.T) {
	router := testRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range map[string]string{
		"company_name":   "ООО Фасад",
		"contact_person": "Иванов И.И.",
		"email":          "ivanov@example.com",
		"phone":          "+7 900 000 00 00",
		"country":        "Россия",
		"city":           "Москва",
		"product_type":   "листы PVD",
		"quantity":       "200 листов",
		"application":    "облицовка фасада",
	} {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	part, err := writer.CreateFormFile("files", "чертеж.dwg")
	if err != nil {
		t.Fatalf("creating file part: %v", err)
	}
	if _, err := part.Write([]byte("dwg-bytes")); err != nil {
		t.Fatalf("writing file part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d: %s", rec.Code, rec.Body.String())
	}
	var created types.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created application: %v", err)
	}
	if len(created.FilePaths) != 1 {
		t.Fatalf("file_paths = %v, want one stored path", created.FilePaths)
	}

	// The list is admin-only.
	if rec := doJSON(t, router, http.MethodGet, "/api/v1/applications", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status %d, want 401", rec.Code)
	}

	token := loginToken(t, router)
	rec = doJSON(t, router, http.MethodGet, "/api/v1/applications", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d: %s", rec.Code, rec.Body.String())
	}
	var list struct {
		Applications []types.Application `json:"applications"`
		Total        int64               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if list.Total != 1 || len(list.Applications) != 1 {
		t.Fatalf("total=%d len=%d, want 1/1", list.Total, len(list.Applications))
	}
	if list.Applications[0].CompanyName != "ООО Фасад" {
		t.Fatalf("company = %q", list.Applications[0].CompanyName)
	}
}

func TestProductCRUDOverHTTP(t *testing.T) {
	router := testRouter(t)
	token := loginToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products", token, gin.H{
		"name":     "Лист шлифованный",
		"category": "sheets",
		"features": []string{"шлифовка", "AISI 304"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}
	var product types.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
		t.Fatalf("decoding product: %v", err)
	}
	if product.Status != "active" {
		t.Fatalf("status = %q, want default active", product.Status)
	}

	// Mutations require a token.
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/products", "", gin.H{"name": "x", "category": "y"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: status %d, want 401", rec.Code)
	}

	// Reads are public.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public list: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/products/1", token, gin.H{"status": "archived"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
		t.Fatalf("decoding updated product: %v", err)
	}
	if product.Status != "archived" {
		t.Fatalf("status = %q after update", product.Status)
	}
	if product.Name != "Лист шлифованный" {
		t.Fatalf("partial update must not clear other fields, name = %q", product.Name)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing product: status %d, want 404", rec.Code)
	}
}

func TestMaterialCreateAndDownloadCounter(t *testing.T) {
	router := testRouter(t)
	token := loginToken(t, router)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range map[string]string{
		"name":     "Каталог отделок",
		"category": "catalogs",
		"tags":     `["каталог","PVD"]`,
	} {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", "каталог.pdf")
	if err != nil {
		t.Fatalf("creating file part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("writing file part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/materials", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}
	var material types.Material
	if err := json.Unmarshal(rec.Body.Bytes(), &material); err != nil {
		t.Fatalf("decoding material: %v", err)
	}
	if material.FileType != "PDF" || material.FilePath == "" {
		t.Fatalf("file metadata not populated: %+v", material)
	}
	if len(material.Tags) != 2 {
		t.Fatalf("tags = %v, want 2 parsed entries", material.Tags)
	}

	for i := 0; i < 2; i++ {
		if rec := doJSON(t, router, http.MethodPost, "/api/v1/materials/1/download", "", nil); rec.Code != http.StatusOK {
			t.Fatalf("download %d: status %d", i, rec.Code)
		}
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/materials/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &material); err != nil {
		t.Fatalf("decoding material: %v", err)
	}
	if material.Downloads != 2 {
		t.Fatalf("downloads = %d, want 2", material.Downloads)
	}

	if rec := doJSON(t, router, http.MethodPost, "/api/v1/materials/99/download", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("download of missing material: status %d, want 404", rec.Code)
	}
}

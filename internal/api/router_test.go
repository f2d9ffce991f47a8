package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ustaweb/content-manager/internal/api"
	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/handlers"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/store"
	"github.com/ustaweb/content-manager/internal/telemetry"
	"github.com/ustaweb/content-manager/internal/testhelpers"
)

func newTestRouter(ms *testhelpers.MemoryStore) http.Handler {
	log := logger.NewNopLogger()
	manager := content.NewManager(ms, nil, log)

	return api.NewRouter(api.RouterDeps{
		Manager:     manager,
		Metrics:     telemetry.New(prometheus.NewRegistry()),
		Logger:      log,
		CORSOrigins: []string{"http://localhost:3000"},
		Health: map[string]handlers.HealthCheck{
			"store": func(context.Context) error { return nil },
		},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func seedArea(ms *testhelpers.MemoryStore, id, title string, order int, active bool) {
	ms.Seed(models.CollectionServiceAreas, store.Document{
		ID: id,
		Fields: map[string]any{
			"title":    title,
			"order":    order,
			"isActive": active,
		},
	})
}

func seedGalleryItem(ms *testhelpers.MemoryStore, id, categoryID string, order int, featured bool) {
	ms.Seed(models.CollectionGalleryItems, store.Document{
		ID: id,
		Fields: map[string]any{
			"title":      "Foto " + id,
			"imageUrl":   "/img/" + id + ".jpg",
			"categoryId": categoryID,
			"order":      order,
			"isActive":   true,
			"isFeatured": featured,
		},
	})
}

func seedNews(ms *testhelpers.MemoryStore, id, title string, order int, featured bool, tags ...string) {
	tagVals := make([]any, len(tags))
	for i, tag := range tags {
		tagVals[i] = tag
	}
	ms.Seed(models.CollectionNews, store.Document{
		ID: id,
		Fields: map[string]any{
			"title":    title,
			"content":  "<p>İçerik " + title + "</p>",
			"tags":     tagVals,
			"order":    order,
			"isActive": true,
			"featured": featured,
		},
	})
}

func TestHealth(t *testing.T) {
	router := newTestRouter(testhelpers.NewMemoryStore())

	rec, body := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthReady_DependencyDown(t *testing.T) {
	log := logger.NewNopLogger()
	ms := testhelpers.NewMemoryStore()
	router := api.NewRouter(api.RouterDeps{
		Manager: content.NewManager(ms, nil, log),
		Metrics: telemetry.New(prometheus.NewRegistry()),
		Logger:  log,
		Health: map[string]handlers.HealthCheck{
			"store": func(context.Context) error { return errors.New("connection refused") },
		},
	})

	rec, body := doJSON(t, router, http.MethodGet, "/health/ready", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
}

func TestListServiceAreas_ActiveSorted(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	seedArea(ms, "b", "Petek Temizliği", 2, true)
	seedArea(ms, "a", "Kombi Servisi", 1, true)
	seedArea(ms, "c", "Pasif Hizmet", 3, false)
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/service-areas", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	areas, ok := body["serviceAreas"].([]any)
	require.True(t, ok)
	require.Len(t, areas, 2)
	first := areas[0].(map[string]any)
	assert.Equal(t, "Kombi Servisi", first["title"])
	assert.Equal(t, float64(2), body["count"])
}

func TestGetServiceAreaBySlug(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	seedArea(ms, "a", "Kaçak Tespiti", 1, true)
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/service-areas/kacak-tespiti", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kaçak Tespiti", body["title"])

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/service-areas/yok-boyle-hizmet", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetServiceAreaBySlug_FollowsTitleChange(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	router := newTestRouter(ms)

	rec, created := doJSON(t, router, http.MethodPost, "/api/v1/admin/service-areas", map[string]any{
		"title":    "Kombi Servisi",
		"order":    1,
		"isActive": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/service-areas/kombi-servisi", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPut, "/api/v1/admin/service-areas/"+id, map[string]any{
		"title": "Kombi Bakımı",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The slug is recomputed from the title, so it moves with the rename.
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/service-areas/kombi-bakimi", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/service-areas/kombi-servisi", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListGalleryItems_Pagination(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	for i := 1; i <= 14; i++ {
		seedGalleryItem(ms, string(rune('a'+i-1)), "cat-1", i, false)
	}
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/gallery/items?page=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(14), pagination["totalItems"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, []any{float64(1), float64(2)}, pagination["pageNumbers"])
}

func TestListGalleryItems_CategoryFilter(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	seedGalleryItem(ms, "a", "cat-1", 1, false)
	seedGalleryItem(ms, "b", "cat-2", 2, false)
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/gallery/items?category=cat-2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].(map[string]any)["id"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/gallery/items?category=all", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["items"].([]any), 2)
}

func TestListFeaturedGalleryItems_Limit(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	for i := 1; i <= 5; i++ {
		seedGalleryItem(ms, string(rune('a'+i-1)), "cat-1", i, true)
	}
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/gallery/featured?limit=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["count"])
}

func TestListNews_TagFilterAndFeaturedSplit(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	seedNews(ms, "n1", "Yeni Şube", 1, true, "duyuru")
	seedNews(ms, "n2", "Kombi Kampanyası", 2, false, "kampanya", "kombi")
	seedNews(ms, "n3", "Petek Dönemi", 3, false, "petek")
	seedNews(ms, "n4", "İkinci Duyuru", 4, true, "duyuru")
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/news", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// Only the first flagged article in display order is highlighted.
	featured := body["featured"].([]any)
	require.Len(t, featured, 1)
	assert.Equal(t, "n1", featured[0].(map[string]any)["id"])
	assert.Len(t, body["articles"].([]any), 2)

	// Listings carry an excerpt, not the full body.
	article := body["articles"].([]any)[0].(map[string]any)
	assert.NotEmpty(t, article["excerpt"])
	assert.Empty(t, article["content"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/news?tag=kombi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["featured"].([]any))
	require.Len(t, body["articles"].([]any), 1)
}

func TestGetNewsArticle(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	seedNews(ms, "n1", "Yeni Şube", 1, false)
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/news/n1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Yeni Şube", body["title"])
	assert.NotEmpty(t, body["content"])

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/news/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNewsArticle_InactiveHidden(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	ms.Seed(models.CollectionNews, store.Document{
		ID: "n1",
		Fields: map[string]any{
			"title":    "Taslak Haber",
			"content":  "<p>Henüz yayında değil</p>",
			"order":    1,
			"isActive": false,
		},
	})
	router := newTestRouter(ms)

	// An unpublished article looks exactly like a missing one.
	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/news/n1", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body, "error")
}

func TestSubmitContact(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/contact", map[string]any{
		"name":        "Mehmet Kaya",
		"phone":       "05321234567",
		"serviceType": "kombi-servisi",
		"urgency":     "cok-acil",
		"message":     "Kombi su kaçırıyor",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "kombi-servisi - cok-acil", body["subject"])
	assert.Equal(t, "high", body["priority"])
	assert.Equal(t, "new", body["status"])
	assert.Len(t, ms.Docs(models.CollectionContactMessages), 1)
}

func TestSubmitContact_MissingFields(t *testing.T) {
	router := newTestRouter(testhelpers.NewMemoryStore())

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/contact", map[string]any{
		"name": "Eksik Form",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "error")
}

func TestAdminServiceAreaCRUD(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	router := newTestRouter(ms)

	rec, created := doJSON(t, router, http.MethodPost, "/api/v1/admin/service-areas", map[string]any{
		"title":       "Kaçak Tespiti",
		"description": "Cihazla tespit",
		"order":       1,
		"isActive":    true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.NotEmpty(t, created["createdAt"])
	// Slugs are computed per request, never persisted.
	assert.NotContains(t, ms.Docs(models.CollectionServiceAreas)[0].Fields, "slug")

	rec, _ = doJSON(t, router, http.MethodPut, "/api/v1/admin/service-areas/"+id, map[string]any{
		"order": 9,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	docs := ms.Docs(models.CollectionServiceAreas)
	require.Len(t, docs, 1)
	assert.Equal(t, float64(9), docs[0].Fields["order"])
	// The merge left the other fields alone.
	assert.Equal(t, "Kaçak Tespiti", docs[0].Fields["title"])

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/admin/service-areas/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, ms.Docs(models.CollectionServiceAreas))
}

func TestAdminUpdate_NotFound(t *testing.T) {
	router := newTestRouter(testhelpers.NewMemoryStore())

	rec, _ := doJSON(t, router, http.MethodPut, "/api/v1/admin/news/missing", map[string]any{"order": 1})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminListIncludesInactive(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	seedArea(ms, "a", "Aktif", 1, true)
	seedArea(ms, "b", "Pasif", 2, false)
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/admin/service-areas", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])
}

func TestAdminImportGalleryItems(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	router := newTestRouter(ms)

	f := excelize.NewFile()
	headers := []string{"title", "description", "image_url", "thumbnail_url", "category_id", "order", "is_active", "is_featured"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	rows := [][]string{
		{"Kombi Montajı", "", "/img/a.jpg", "", "cat-1", "1", "true", "false"},
		{"", "", "/img/b.jpg", "", "cat-1", "2", "true", "false"}, // missing title
	}
	for rowIdx, row := range rows {
		for colIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	var workbook bytes.Buffer
	require.NoError(t, f.Write(&workbook))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "galeri.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/gallery/items/import", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["imported"])
	assert.Len(t, body["errors"].([]any), 1)
	assert.Len(t, ms.Docs(models.CollectionGalleryItems), 1)
}

func TestAdminContactMessages(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	router := newTestRouter(ms)

	rec, created := doJSON(t, router, http.MethodPost, "/api/v1/contact", map[string]any{
		"name":        "Ayşe Yılmaz",
		"phone":       "05421112233",
		"serviceType": "petek-temizligi",
		"urgency":     "acil",
		"message":     "Randevu",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/admin/contact-messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	rec, _ = doJSON(t, router, http.MethodPut, "/api/v1/admin/contact-messages/"+id+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	docs := ms.Docs(models.CollectionContactMessages)
	require.Len(t, docs, 1)
	assert.Equal(t, "read", docs[0].Fields["status"])

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/admin/contact-messages/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestContentUnavailable(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	ms.FailWith = errors.New("connection refused")
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/service-areas", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body, "error")
}

func TestQueryRejectedFallsBackTransparently(t *testing.T) {
	ms := testhelpers.NewMemoryStore()
	ms.RejectNarrowQueries = true
	seedArea(ms, "a", "Aktif", 1, true)
	seedArea(ms, "b", "Pasif", 2, false)
	router := newTestRouter(ms)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/service-areas", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
}

func TestCORSHeaders(t *testing.T) {
	router := newTestRouter(testhelpers.NewMemoryStore())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/service-areas", strings.NewReader(""))
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

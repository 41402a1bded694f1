package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
	cartrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/cart"
	productrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/product"
	sessionrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/session"
	cartsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/cart"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/catalog"
	sessionsvc "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/service/session"
	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/whatsapp"
)

const testPassword = "segredo"

func testRouter(t *testing.T, products ...domain.Product) *gin.Engine {
	t.Helper()

	prepo := productrepo.NewMemory()
	for _, p := range products {
		if err := prepo.Put(context.Background(), p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	sessSvc, err := sessionsvc.New(sessionrepo.NewMemory(), testPassword, time.Hour)
	if err != nil {
		t.Fatalf("session service: %v", err)
	}

	deps := Deps{
		CatalogSvc:  catalog.New(prepo),
		CartSvc:     cartsvc.New(cartrepo.NewMemory(), prepo),
		SessionSvc:  sessSvc,
		ProductRepo: prepo,
		WhatsApp:    whatsapp.NewBuilder(""),
	}
	return buildRouter(log.New(io.Discard, "", 0), nil, deps)
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(router, http.MethodPost, "/auth/login", `{"password":"`+testPassword+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func TestListProducts_FilterAndSort(t *testing.T) {
	router := testRouter(t,
		domain.Product{ID: "a", Label: "0001", Name: "Cabeceira 1", Price: 50, Available: true},
		domain.Product{ID: "b", Label: "0002", Name: "Cabeceira 2", Price: 10, Available: false},
		domain.Product{ID: "c", Label: "0003", Name: "Painel", Price: 30, Available: true},
	)

	rec := doJSON(router, http.MethodGet, "/products?availability=available&sort=price-asc", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var resp struct {
		Total   int              `json:"total"`
		Results []domain.Product `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 available products, got %d", resp.Total)
	}
	if resp.Results[0].ID != "c" || resp.Results[1].ID != "a" {
		t.Fatalf("wrong price-asc order: %+v", resp.Results)
	}

	rec = doJSON(router, http.MethodGet, "/products?search=painel", "", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Results[0].ID != "c" {
		t.Fatalf("search failed: %+v", resp)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(router, http.MethodGet, "/products/ghost", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(router, http.MethodPost, "/admin/products", `{"name":"Nova"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), loginPath) {
		t.Fatalf("401 should carry a login hint: %s", rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/admin/products", `{"name":"Nova"}`, "token-forjado")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with forged token, got %d", rec.Code)
	}
}

func TestAdmin_SaveToggleDelete(t *testing.T) {
	router := testRouter(t)
	token := login(t, router)

	rec := doJSON(router, http.MethodPost, "/admin/products", `{"name":"Cabeceira Nova","label":"0009","price":499}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save: %d %s", rec.Code, rec.Body.String())
	}
	var created domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || !created.Available {
		t.Fatalf("bad created product: %+v", created)
	}

	rec = doJSON(router, http.MethodPost, "/admin/products/"+created.ID+"/toggle", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", rec.Code, rec.Body.String())
	}
	var toggled domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode toggled: %v", err)
	}
	if toggled.Available {
		t.Fatal("expected product suspended after toggle")
	}

	rec = doJSON(router, http.MethodDelete, "/admin/products/"+created.ID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	// Deleting again stays a no-op.
	rec = doJSON(router, http.MethodDelete, "/admin/products/"+created.ID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete absent: %d", rec.Code)
	}
}

func TestAdmin_ImportRejectsNonArray(t *testing.T) {
	router := testRouter(t)
	token := login(t, router)

	rec := doJSON(router, http.MethodPost, "/admin/products/import", `{"name":"X"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-array import, got %d", rec.Code)
	}
}

func TestAdmin_ImportAndExport(t *testing.T) {
	router := testRouter(t)
	token := login(t, router)

	rec := doJSON(router, http.MethodPost, "/admin/products/import", `[{"name":"X","price":10}]`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodGet, "/admin/products/export", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "produtos-") {
		t.Fatalf("export should download as attachment: %q", rec.Header().Get("Content-Disposition"))
	}
	var docs []domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(docs) != 1 || docs[0].Price != 10 {
		t.Fatalf("unexpected export: %+v", docs)
	}
}

func TestCart_AddChangeRemoveFlow(t *testing.T) {
	router := testRouter(t,
		domain.Product{ID: "p1", Label: "0001", Name: "Cabeceira 1", Price: 100, Available: true},
	)

	rec := doJSON(router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("add: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(router, http.MethodPost, "/cart/items", `{"productId":"p1","qty":2}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("add more: %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/cart", "", "")
	var summary cartsvc.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary.Lines) != 1 || summary.Count != 3 || summary.Total != 300 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	rec = doJSON(router, http.MethodPut, "/cart/items/p1", `{"qty":0}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("change qty: %d", rec.Code)
	}
	rec = doJSON(router, http.MethodGet, "/cart", "", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary.Lines) != 0 {
		t.Fatalf("qty 0 should remove the line: %+v", summary)
	}
}

func TestCart_WhatsAppLink(t *testing.T) {
	router := testRouter(t,
		domain.Product{ID: "p1", Label: "0001", Name: "Cabeceira 1", Price: 399, Available: true},
	)

	rec := doJSON(router, http.MethodGet, "/cart/whatsapp-link", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty cart should refuse a link, got %d", rec.Code)
	}

	if rec := doJSON(router, http.MethodPost, "/cart/items", `{"productId":"p1","qty":2}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("add: %d", rec.Code)
	}
	rec = doJSON(router, http.MethodGet, "/cart/whatsapp-link", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("link: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.URL, "https://wa.me/") {
		t.Fatalf("unexpected url %q", resp.URL)
	}
}

func TestProductWhatsAppLink(t *testing.T) {
	router := testRouter(t,
		domain.Product{ID: "p1", Label: "0002", Name: "Cabeceira 2", WhatsAppTemplate: domain.DefaultWhatsAppTemplate, Available: true},
	)
	rec := doJSON(router, http.MethodGet, "/products/p1/whatsapp-link", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("link: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "0002") {
		t.Fatalf("label missing from link: %s", rec.Body.String())
	}
}

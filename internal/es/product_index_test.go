package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

type recorded struct {
	method string
	path   string
	body   string
}

type fakeES struct {
	mu       sync.Mutex
	requests []recorded
}

func (f *fakeES) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recorded{method: r.Method, path: r.URL.Path, body: string(body)})
		f.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
		case r.Method == http.MethodPut || r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/_doc/"):
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"result":"created"}`)
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/MISSING"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
		case r.Method == http.MethodDelete:
			_, _ = io.WriteString(w, `{"result":"deleted"}`)
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[{"_id":"B2"},{"_id":"B1"}]}}`)
		default:
			t.Logf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"unexpected"}`)
		}
	}
}

func (f *fakeES) last(method string) recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].method == method {
			return f.requests[i]
		}
	}
	return recorded{}
}

func newTestIndex(t *testing.T) (*ProductIndex, *fakeES) {
	t.Helper()

	fake := &fakeES{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewProductIndex(client, "products"), fake
}

func TestProductIndex_IndexProduct(t *testing.T) {
	t.Parallel()

	idx, fake := newTestIndex(t)
	p := models.Product{
		Barcode:     "5000001",
		ProductName: "Lavender Soap",
		Brand:       "Pearline",
		Category:    &models.Category{Name: "Bath"},
	}
	require.NoError(t, idx.IndexProduct(context.Background(), p))

	req := fake.last(http.MethodPut)
	if req.method == "" {
		req = fake.last(http.MethodPost)
	}
	assert.Equal(t, "/products/_doc/5000001", req.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.body), &doc))
	assert.Equal(t, "Lavender Soap", doc["productName"])
	assert.Equal(t, "Bath", doc["categoryName"])
}

func TestProductIndex_DeleteMissingIsNotAnError(t *testing.T) {
	t.Parallel()

	idx, fake := newTestIndex(t)
	require.NoError(t, idx.DeleteProduct(context.Background(), "MISSING"))
	require.NoError(t, idx.DeleteProduct(context.Background(), "B1"))
	assert.Equal(t, "/products/_doc/B1", fake.last(http.MethodDelete).path)
}

func TestProductIndex_Search(t *testing.T) {
	t.Parallel()

	idx, fake := newTestIndex(t)
	total, barcodes, err := idx.Search(context.Background(), "soap", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"B2", "B1"}, barcodes)

	req := fake.last(http.MethodPost)
	if req.method == "" {
		req = fake.last(http.MethodGet)
	}
	assert.Contains(t, req.body, `"multi_match"`)
	assert.Contains(t, req.body, `"soap"`)
}

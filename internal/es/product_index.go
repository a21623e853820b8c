package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

type ProductIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewProductIndex(client *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{client: client, index: index}
}

type productDoc struct {
	Barcode      string `json:"barcode"`
	ProductName  string `json:"productName"`
	Brand        string `json:"brand"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Usage        string `json:"usage"`
	CategoryName string `json:"categoryName,omitempty"`
	IsAvailable  bool   `json:"isAvailable"`
}

func docFromProduct(p models.Product) productDoc {
	doc := productDoc{
		Barcode:     p.Barcode,
		ProductName: p.ProductName,
		Brand:       p.Brand,
		Description: p.Description,
		Ingredients: p.Ingredients,
		Usage:       p.Usage,
		IsAvailable: p.IsAvailable,
	}
	if p.Category != nil {
		doc.CategoryName = p.Category.Name
	}
	return doc
}

func (x *ProductIndex) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(docFromProduct(p)); err != nil {
		return fmt.Errorf("encode product doc: %w", err)
	}

	res, err := x.client.Index(
		x.index,
		&buf,
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(p.Barcode),
		x.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index product %s: %w", p.Barcode, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index", res.StatusCode, res.Body)
	}
	return nil
}

// DeleteProduct removes the document; a missing document is not an error.
func (x *ProductIndex) DeleteProduct(ctx context.Context, barcode string) error {
	res, err := x.client.Delete(
		x.index,
		barcode,
		x.client.Delete.WithContext(ctx),
		x.client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", barcode, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return responseError("delete", res.StatusCode, res.Body)
	}
	return nil
}

// Search returns the total hit count and the barcodes of the requested page,
// best match first.
func (x *ProductIndex) Search(ctx context.Context, query string, from, size int) (int64, []string, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"productName^3", "brand^2", "categoryName", "description", "ingredients"},
				"fuzziness": "AUTO",
			},
		},
		"from":    from,
		"size":    size,
		"_source": []string{"barcode"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, responseError("search", res.StatusCode, res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	barcodes := make([]string, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		barcodes[i] = hit.ID
	}
	return r.Hits.Total.Value, barcodes, nil
}

func responseError(op string, status int, body io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(body, 2048))
	return fmt.Errorf("elasticsearch %s: status %d: %s", op, status, bytes.TrimSpace(b))
}

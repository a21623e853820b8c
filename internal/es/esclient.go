package es

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/pearline_shop/internal/config"
)

// NewClient connects to Elasticsearch and checks the cluster answers.
func NewClient(ctx context.Context, cfg config.Config, l *slog.Logger) (*elasticsearch.Client, error) {
	l = l.With("component", "es", "url", cfg.ESURL)
	l.Info("connecting to elasticsearch")

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		l.Error("elasticsearch error response", "status", res.StatusCode, "body", string(body))
		return nil, fmt.Errorf("elasticsearch error: %s", res.Status())
	}

	l.Info("connected to elasticsearch")
	return client, nil
}

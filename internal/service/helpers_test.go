package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/testutil"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

func newRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(testutil.NewDB(t))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, r *repo.GormRepo, barcode, name, casePrice, unitPrice string) models.Product {
	t.Helper()

	p := models.Product{
		Barcode:        barcode,
		ProductName:    name,
		Brand:          "Pearline",
		CaseSize:       12,
		CasesPerLayer:  8,
		CasesPerPallet: 64,
		LeadTimeDays:   3,
		CasePrice:      dec(casePrice),
		UnitPrice:      dec(unitPrice),
		IsAvailable:    true,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

package services

import (
	"context"
	"fmt"
	"time"

	"furniture_back_end/internal/database"
	"furniture_back_end/internal/models"
	"furniture_back_end/internal/utils"

	"go.uber.org/zap"
)

const (
	snapshotQRSize = 160
	snapshotURLTTL = 15 * time.Minute
)

// Snapshot is a rendered order. When an archive is configured URL is set and
// PNG is left empty.
type Snapshot struct {
	FileName string `json:"fileName"`
	URL      string `json:"url,omitempty"`
	PNG      []byte `json:"-"`
}

type SnapshotService struct {
	orders   *database.OrderStore
	renderer utils.Renderer
	store    SnapshotStore
	log      *zap.Logger
}

// NewSnapshotService takes an optional archive store.
func NewSnapshotService(orders *database.OrderStore, renderer utils.Renderer, store SnapshotStore, log *zap.Logger) *SnapshotService {
	return &SnapshotService{orders: orders, renderer: renderer, store: store, log: log}
}

// Export renders any order by id or display number.
func (s *SnapshotService) Export(ctx context.Context, ref string) (Snapshot, error) {
	o, ok := lookupOrder(s.orders, ref)
	if !ok {
		s.log.Warn("⚠️ snapshot requested for unknown order", zap.String("ref", ref))
		return Snapshot{}, ErrMissingExportTarget
	}
	return s.render(ctx, o)
}

// ExportFor renders an order only when it belongs to phone.
func (s *SnapshotService) ExportFor(ctx context.Context, ref, phone string) (Snapshot, error) {
	o, ok := lookupOrder(s.orders, ref)
	if !ok || o.UserPhone != phone {
		s.log.Warn("⚠️ snapshot requested for unknown order", zap.String("ref", ref))
		return Snapshot{}, ErrMissingExportTarget
	}
	return s.render(ctx, o)
}

func (s *SnapshotService) render(ctx context.Context, o *models.Order) (Snapshot, error) {
	qr, err := utils.QRDataURI(o.Number, snapshotQRSize)
	if err != nil {
		return Snapshot{}, fmt.Errorf("qr: %w", err)
	}
	html, err := utils.RenderOrderHTML(o, qr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("order page: %w", err)
	}
	png, err := s.renderer.RenderPNG(ctx, html)
	if err != nil {
		return Snapshot{}, fmt.Errorf("render: %w", err)
	}

	snap := Snapshot{FileName: fmt.Sprintf("order-%s.png", o.Number), PNG: png}
	if s.store == nil {
		return snap, nil
	}

	key := fmt.Sprintf("orders/%s/%s", o.ID, snap.FileName)
	if err := s.store.Put(ctx, key, png); err != nil {
		return Snapshot{}, fmt.Errorf("archive: %w", err)
	}
	url, err := s.store.SignedURL(ctx, key, snapshotURLTTL)
	if err != nil {
		return Snapshot{}, fmt.Errorf("signed url: %w", err)
	}
	s.log.Info("🖼️ snapshot archived", zap.String("order_id", o.ID), zap.String("key", key))
	return Snapshot{FileName: snap.FileName, URL: url}, nil
}

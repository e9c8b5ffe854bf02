package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

var _ procurement.OrderCache = (*OrderCache)(nil)

const orderKeyPrefix = "purchase_order:"

// OrderCache caché de lectura de órdenes de compra (JSON por orden, con TTL).
// Cada entrada lleva la versión de la orden y nunca se reemplaza por una versión anterior.
type OrderCache struct {
	client Client
	ttl    time.Duration
}

// NewOrderCache ttl <= 0 usa 5 minutos.
func NewOrderCache(client Client, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OrderCache{client: client, ttl: ttl}
}

func orderKey(orderID string) string { return orderKeyPrefix + orderID }

// cachedOrder formato guardado; "v" es el campo que compara Client.SetIfNewer.
type cachedOrder struct {
	Version int                   `json:"v"`
	Order   *entity.PurchaseOrder `json:"order"`
}

// Get devuelve procurement.ErrCacheMiss si la orden no está en caché.
func (c *OrderCache) Get(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	raw, err := c.client.Get(ctx, orderKey(orderID))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, procurement.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var entry cachedOrder
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.Order == nil {
		// entrada corrupta o de otro formato: se trata como miss
		_ = c.client.Delete(ctx, orderKey(orderID))
		return nil, procurement.ErrCacheMiss
	}
	return entry.Order, nil
}

// Set guarda la orden completa salvo que la caché ya tenga una versión más nueva; en ese caso
// no escribe y no es error.
func (c *OrderCache) Set(ctx context.Context, order *entity.PurchaseOrder) error {
	raw, err := json.Marshal(cachedOrder{Version: order.Version, Order: order})
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if _, err := c.client.SetIfNewer(ctx, orderKey(order.ID), order.Version, string(raw), c.ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete invalida la orden.
func (c *OrderCache) Delete(ctx context.Context, orderID string) error {
	if err := c.client.Delete(ctx, orderKey(orderID)); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

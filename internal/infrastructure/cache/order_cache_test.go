package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

type memClient struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newMemClient() *memClient {
	return &memClient{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *memClient) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *memClient) SetIfNewer(_ context.Context, key string, version int, value string, exp time.Duration) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if cur, ok := m.data[key]; ok {
		var stored struct {
			V *int `json:"v"`
		}
		if json.Unmarshal([]byte(cur), &stored) == nil && stored.V != nil && *stored.V > version {
			return false, nil
		}
	}
	m.data[key] = value
	m.ttl[key] = exp
	return true, nil
}

func (m *memClient) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return m.err
}

func TestOrderCache_GuardarYLeer(t *testing.T) {
	client := newMemClient()
	c := NewOrderCache(client, time.Minute)
	order := &entity.PurchaseOrder{
		ID:               "po-1",
		CompanyID:        "co-1",
		Status:           entity.OrderStatusReceivedHub,
		ProductCostLocal: decimal.RequireFromString("78750.00"),
		Version:          8,
		Items:            []entity.PurchaseOrderItem{{ID: "it-1", OrderedQty: 100, FinalUnitCost: decimal.RequireFromString("792.763157")}},
	}

	require.NoError(t, c.Set(context.Background(), order))
	got, err := c.Get(context.Background(), "po-1")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceivedHub, got.Status)
	assert.Equal(t, 8, got.Version)
	assert.True(t, order.ProductCostLocal.Equal(got.ProductCostLocal))
	assert.True(t, order.Items[0].FinalUnitCost.Equal(got.Items[0].FinalUnitCost), "sin redondeo en caché")
	assert.Equal(t, time.Minute, client.ttl["purchase_order:po-1"])
}

func TestOrderCache_VersionAnteriorNoReemplaza(t *testing.T) {
	client := newMemClient()
	c := NewOrderCache(client, time.Minute)
	newer := &entity.PurchaseOrder{ID: "po-1", Status: entity.OrderStatusPaymentConfirmed, Version: 2}
	older := &entity.PurchaseOrder{ID: "po-1", Status: entity.OrderStatusDraft, Version: 1}

	require.NoError(t, c.Set(context.Background(), newer))
	require.NoError(t, c.Set(context.Background(), older), "no escribir no es error")

	got, err := c.Get(context.Background(), "po-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, entity.OrderStatusPaymentConfirmed, got.Status)

	third := &entity.PurchaseOrder{ID: "po-1", Status: entity.OrderStatusSupplierDispatched, Version: 3}
	require.NoError(t, c.Set(context.Background(), third))
	got, err = c.Get(context.Background(), "po-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
}

func TestOrderCache_MissYEntradaCorrupta(t *testing.T) {
	client := newMemClient()
	c := NewOrderCache(client, 0)

	_, err := c.Get(context.Background(), "po-x")
	assert.ErrorIs(t, err, procurement.ErrCacheMiss)

	client.data["purchase_order:po-x"] = "{no es json"
	_, err = c.Get(context.Background(), "po-x")
	assert.ErrorIs(t, err, procurement.ErrCacheMiss)
	assert.NotContains(t, client.data, "purchase_order:po-x", "la entrada corrupta se borra")

	client.data["purchase_order:po-y"] = `{"ID":"po-y","Version":4}`
	_, err = c.Get(context.Background(), "po-y")
	assert.ErrorIs(t, err, procurement.ErrCacheMiss, "formato sin envoltura")
}

func TestOrderCache_DeleteYErrores(t *testing.T) {
	client := newMemClient()
	c := NewOrderCache(client, time.Minute)
	require.NoError(t, c.Set(context.Background(), &entity.PurchaseOrder{ID: "po-1"}))

	require.NoError(t, c.Delete(context.Background(), "po-1"))
	_, err := c.Get(context.Background(), "po-1")
	assert.ErrorIs(t, err, procurement.ErrCacheMiss)

	client.err = errors.New("connection refused")
	_, err = c.Get(context.Background(), "po-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, procurement.ErrCacheMiss, "caída de Redis no es un miss")
}

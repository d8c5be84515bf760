package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"restaurant-order-api/config"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderComputesExactTotal(t *testing.T) {
	r := setupTest(t)
	burger := seedMenuItem(t, "Burger", "50.00")
	fries := seedMenuItem(t, "Fries", "19.99")

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"items": []gin.H{
			{"menu_item_id": burger.ID, "quantity": 2},
			{"menu_item_id": fries.ID, "quantity": 3},
		},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order).Error)
	// 50.00*2 + 19.99*3 = 159.97, exact
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("159.97")),
		"got total %s", order.TotalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Pho", "50.00")

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 2}},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// A later price edit must not drift the historical order value.
	require.NoError(t, config.DB.Model(&models.MenuItem{}).Where("id = ?", item.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order).Error)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("100.00")))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("50.00")))
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{"items": []gin.H{}}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "no partial order may be persisted")
}

func TestPlaceOrderZeroQuantity(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Tea", "5.00")

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 0}},
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPlaceOrderUnknownMenuItemIsAtomic(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Spring Rolls", "12.00")

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"items": []gin.H{
			{"menu_item_id": item.ID, "quantity": 2},
			{"menu_item_id": 9999, "quantity": 1},
		},
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var orders, items int64
	config.DB.Model(&models.Order{}).Count(&orders)
	config.DB.Model(&models.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	// The rollback must also revert the sold-count bump of the valid line.
	var reloaded models.MenuItem
	require.NoError(t, config.DB.First(&reloaded, item.ID).Error)
	assert.Zero(t, reloaded.SoldCount)
}

func TestPlaceOrderIncrementsSoldCount(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Banh Mi", "30.00")

	for _, qty := range []int{2, 3} {
		w := doJSON(t, r, http.MethodPost, "/order", gin.H{
			"items": []gin.H{{"menu_item_id": item.ID, "quantity": qty}},
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	var reloaded models.MenuItem
	require.NoError(t, config.DB.First(&reloaded, item.ID).Error)
	assert.Equal(t, 5, reloaded.SoldCount)
}

func TestPlaceOrderInactiveMenuItem(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Retired Dish", "10.00")
	require.NoError(t, config.DB.Model(&models.MenuItem{}).Where("id = ?", item.ID).
		Update("active", false).Error)

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPlaceOrderLenientReferences(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Com Tam", "45.00")

	// Unknown table and user ids are dropped, never fail the order.
	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"table_id": 9999,
		"user_id":  9999,
		"items":    []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.First(&order).Error)
	assert.Nil(t, order.TableID)
	assert.Nil(t, order.UserID)
}

func TestPlaceOrderResolvesKnownTable(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Lau", "120.00")
	table := models.DiningTable{Name: "T1", Seats: 4}
	require.NoError(t, config.DB.Create(&table).Error)

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"table_id": table.ID,
		"note":     "no onions",
		"items":    []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, config.DB.First(&order).Error)
	require.NotNil(t, order.TableID)
	assert.Equal(t, table.ID, *order.TableID)
	assert.Equal(t, "no onions", order.Note)
}

func TestOrderItemsMissingOrder(t *testing.T) {
	r := setupTest(t)
	w := doJSON(t, r, http.MethodGet, "/order-item/42", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderItemsReturnsLines(t *testing.T) {
	r := setupTest(t)
	item := seedMenuItem(t, "Goi Cuon", "25.00")

	w := doJSON(t, r, http.MethodPost, "/order", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 2}},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, config.DB.First(&order).Error)

	w = doJSON(t, r, http.MethodGet, "/order-item/"+itoa(order.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var lines []models.OrderItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, item.ID, lines[0].MenuItemID)
	assert.Equal(t, 2, lines[0].Quantity)
}

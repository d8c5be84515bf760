package handlers

import (
	"errors"
	"log"

	"restaurant-order-api/config"
	"restaurant-order-api/models"
	"restaurant-order-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	TableID       *uint  `json:"table_id"`
	UserID        *uint  `json:"user_id"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
	Items         []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

// errMenuItemMissing aborts the order transaction when a line references an
// unknown menu item; nothing is persisted in that case.
var errMenuItemMissing = errors.New("menu item not found")
var errMenuItemInactive = errors.New("menu item not active")

// PlaceOrder creates a dine-in order. Unit prices are snapshotted from the
// menu at creation time, the total is exact decimal arithmetic, and each
// ordered item's sold count is incremented by the ordered quantity.
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	order := models.Order{
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}

	// Table and user references are best-effort: an unknown id never fails
	// the order, the reference is dropped and logged instead.
	if req.TableID != nil {
		var table models.DiningTable
		if err := config.DB.First(&table, *req.TableID).Error; err == nil {
			order.TableID = &table.ID
		} else {
			log.Printf("order: dropping unknown table reference %d", *req.TableID)
		}
	}
	if req.UserID != nil {
		var user models.User
		if err := config.DB.First(&user, *req.UserID).Error; err == nil {
			order.UserID = &user.ID
		} else {
			log.Printf("order: dropping unknown user reference %d", *req.UserID)
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		for _, line := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, line.MenuItemID).Error; err != nil {
				return errMenuItemMissing
			}
			if !menuItem.Active {
				return errMenuItemInactive
			}
			order.Items = append(order.Items, models.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   line.Quantity,
				Price:      menuItem.Price,
			})
			total = total.Add(menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))

			// Atomic increment so concurrent orders for the same item
			// accumulate without lost updates.
			if err := tx.Model(&models.MenuItem{}).Where("id = ?", menuItem.ID).
				UpdateColumn("sold_count", gorm.Expr("sold_count + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}
		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errMenuItemMissing):
			respondNotFound(c, "menu_item_not_found")
		case errors.Is(err, errMenuItemInactive):
			respondFieldErrors(c, map[string][]string{"items": {"menu item is not active"}})
		default:
			respondInternal(c)
		}
		return
	}

	config.DB.Preload("Items.MenuItem").Preload("Table").First(&order, order.ID)
	respondOK(c, order, "created")
}

// ListOrders returns all orders with items and table attached (public)
func ListOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)
	respondOK(c, orders, "ok")
}

// OrderItems returns the ordered item lines of a single order.
// A missing order is a 404, never an empty list.
func OrderItems(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").First(&order, c.Param("id")).Error; err != nil {
		respondNotFound(c, "order_not_found")
		return
	}
	respondOK(c, order.Items, "ok")
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the status state machine.
// Unknown statuses and illegal transitions are rejected.
func UpdateOrderStatus(c *gin.Context) {
	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	next := models.OrderStatus(req.Status)
	if !statemachine.ValidOrderStatus(next) {
		respondFieldErrors(c, map[string][]string{"status": {"must be one of: pending, completed, cancelled"}})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		respondNotFound(c, "order_not_found")
		return
	}
	if err := statemachine.CanTransitionOrder(order.Status, next); err != nil {
		respondFieldErrors(c, map[string][]string{"status": {err.Error()}})
		return
	}

	if err := config.DB.Model(&order).Update("status", next).Error; err != nil {
		respondInternal(c)
		return
	}
	order.Status = next
	respondOK(c, order, "updated")
}

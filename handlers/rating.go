package handlers

import (
	"restaurant-order-api/config"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
)

type RatingRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// RatingForm returns the order to rate, plus any rating already submitted
func RatingForm(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").First(&order, c.Param("order_id")).Error; err != nil {
		respondNotFound(c, "order_not_found")
		return
	}
	var rating *models.Rating
	var existing models.Rating
	if err := config.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		rating = &existing
	}
	respondOK(c, gin.H{"order": order, "rating": rating}, "ok")
}

// SubmitRating records a customer rating for a completed order
func SubmitRating(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		respondNotFound(c, "order_not_found")
		return
	}

	rating := models.Rating{
		OrderID: order.ID,
		Stars:   req.Stars,
		Comment: req.Comment,
	}
	if err := config.DB.Create(&rating).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, rating, "created")
}

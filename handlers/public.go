package handlers

import (
	"os"
	"path/filepath"
	"time"

	"restaurant-order-api/config"
	"restaurant-order-api/models"
	"restaurant-order-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all menu categories (public)
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Find(&categories)
	respondOK(c, categories, "ok")
}

// ListTables returns all dining tables (public)
func ListTables(c *gin.Context) {
	var tables []models.DiningTable
	config.DB.Find(&tables)
	respondOK(c, tables, "ok")
}

// GetTable returns a single table; a missing id is a 404
func GetTable(c *gin.Context) {
	var table models.DiningTable
	if err := config.DB.First(&table, c.Param("id")).Error; err != nil {
		respondNotFound(c, "table_not_found")
		return
	}
	respondOK(c, table, "ok")
}

// ListMenu returns the full menu (public)
func ListMenu(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB.Preload("Category")
	if category := c.Query("category_id"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if active := c.Query("active"); active == "true" {
		query = query.Where("active = ?", true)
	}
	query.Find(&items)
	respondOK(c, items, "ok")
}

// PopularDishes returns the five best-selling menu items
func PopularDishes(c *gin.Context) {
	var items []models.MenuItem
	config.DB.Where("active = ?", true).Order("sold_count desc").Limit(5).Find(&items)
	respondOK(c, items, "ok")
}

// Chatbox is a stub assistant that echoes the visitor's message
func Chatbox(c *gin.Context) {
	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidationError(c, err)
		return
	}
	respondOK(c, gin.H{"reply": "Bot: " + payload["message"]}, "ok")
}

// Upload stores a multipart file under uploads/ with a timestamped name
func Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		respondFieldErrors(c, map[string][]string{"file": {"is required"}})
		return
	}
	if err := os.MkdirAll("uploads", 0o755); err != nil {
		respondInternal(c)
		return
	}
	filename := time.Now().Format("2006-01-02T15-04-05") + "_" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join("uploads", filename)); err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, gin.H{"url": "/uploads/" + filename}, "uploaded")
}

// GetStateMachineInfo documents the order and booking transition tables
func GetStateMachineInfo(c *gin.Context) {
	respondOK(c, gin.H{
		"order":   statemachine.AllOrderTransitions(),
		"booking": statemachine.AllBookingTransitions(),
	}, "ok")
}

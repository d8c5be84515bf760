package handlers

import (
	"errors"

	"restaurant-order-api/config"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var errUnknownRole = errors.New("must be a subset of: admin, staff, customer")

type UserRequest struct {
	Username string            `json:"username" binding:"required"`
	FullName string            `json:"full_name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Password string            `json:"password"`
	Active   *bool             `json:"active"`
	Roles    []models.RoleName `json:"roles"`
}

// ListUsers returns all accounts with their role sets
func ListUsers(c *gin.Context) {
	var users []models.User
	config.DB.Preload("Roles").Find(&users)
	respondOK(c, users, "ok")
}

// GetUser returns a single account
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Preload("Roles").First(&user, c.Param("id")).Error; err != nil {
		respondNotFound(c, "user_not_found")
		return
	}
	respondOK(c, user, "ok")
}

// CreateUser adds an account. Roles outside the closed set are rejected.
func CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if req.Password == "" {
		respondFieldErrors(c, map[string][]string{"password": {"is required"}})
		return
	}

	var user models.User
	if err := applyUserRequest(&user, req, true); err != nil {
		respondFieldErrors(c, map[string][]string{"roles": {err.Error()}})
		return
	}
	if err := config.DB.Create(&user).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, user, "created")
}

// UpdateUser edits an account; the password only changes when one is supplied
func UpdateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var user models.User
	if err := config.DB.Preload("Roles").First(&user, c.Param("id")).Error; err != nil {
		respondNotFound(c, "user_not_found")
		return
	}
	if err := applyUserRequest(&user, req, req.Password != ""); err != nil {
		respondFieldErrors(c, map[string][]string{"roles": {err.Error()}})
		return
	}
	if err := config.DB.Save(&user).Error; err != nil {
		respondInternal(c)
		return
	}
	if len(req.Roles) > 0 {
		if err := config.DB.Model(&user).Association("Roles").Replace(user.Roles); err != nil {
			respondInternal(c)
			return
		}
	}
	respondOK(c, user, "updated")
}

func applyUserRequest(user *models.User, req UserRequest, updatePassword bool) error {
	user.Username = req.Username
	user.FullName = req.FullName
	user.Email = req.Email
	user.Phone = req.Phone
	if req.Active != nil {
		user.Active = *req.Active
	} else if user.ID == 0 {
		user.Active = true
	}
	if updatePassword {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	if len(req.Roles) > 0 {
		var roles []models.Role
		for _, name := range req.Roles {
			if !models.ValidRole(name) {
				return errUnknownRole
			}
			var role models.Role
			if err := config.DB.Where("name = ?", name).First(&role).Error; err != nil {
				return err
			}
			roles = append(roles, role)
		}
		user.Roles = roles
	}
	return nil
}

type TableRequest struct {
	Name   string `json:"name" binding:"required"`
	Seats  int    `json:"seats"`
	Status string `json:"status"`
}

// AddTable creates a dining table
func AddTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	table := models.DiningTable{Name: req.Name, Seats: req.Seats, Status: req.Status}
	if err := config.DB.Create(&table).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, table, "created")
}

// UpdateTable edits a dining table
func UpdateTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	var table models.DiningTable
	if err := config.DB.First(&table, c.Param("id")).Error; err != nil {
		respondNotFound(c, "table_not_found")
		return
	}
	table.Name = req.Name
	table.Seats = req.Seats
	table.Status = req.Status
	if err := config.DB.Save(&table).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, table, "updated")
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddCategory creates a menu category (admin role required)
func AddCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	category := models.Category{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, category, "created")
}

// UpdateCategory edits a menu category (admin role required)
func UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		respondNotFound(c, "category_not_found")
		return
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := config.DB.Save(&category).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, category, "updated")
}

// DeleteCategory removes a menu category (admin role required)
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		respondNotFound(c, "category_not_found")
		return
	}
	if err := config.DB.Delete(&category).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, "deleted", "deleted")
}

// GetCategory returns a single category
func GetCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		respondNotFound(c, "category_not_found")
		return
	}
	respondOK(c, category, "ok")
}

type MenuItemRequest struct {
	CategoryID  *uint           `json:"category_id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	Active      *bool           `json:"active"`
}

// AddMenuItem creates a menu item
func AddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if req.Price.IsNegative() {
		respondFieldErrors(c, map[string][]string{"price": {"must not be negative"}})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			respondNotFound(c, "category_not_found")
			return
		}
		item.CategoryID = &category.ID
	}
	if err := config.DB.Create(&item).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, item, "created")
}

// UpdateMenuItem edits a menu item. sold_count is untouched here; only order
// creation writes it.
func UpdateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if req.Price.IsNegative() {
		respondFieldErrors(c, map[string][]string{"price": {"must not be negative"}})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		respondNotFound(c, "menu_item_not_found")
		return
	}
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			respondNotFound(c, "category_not_found")
			return
		}
		item.CategoryID = &category.ID
	}
	if err := config.DB.Save(&item).Error; err != nil {
		respondInternal(c)
		return
	}
	respondOK(c, item, "updated")
}

// Dashboard returns headline counters for the admin home screen
func Dashboard(c *gin.Context) {
	var users, bookings, orders int64
	config.DB.Model(&models.User{}).Count(&users)
	config.DB.Model(&models.Booking{}).Count(&bookings)
	config.DB.Model(&models.Order{}).Count(&orders)

	var payments []models.Payment
	config.DB.Where("status = ?", "completed").Find(&payments)
	revenue := decimal.Zero
	for _, p := range payments {
		revenue = revenue.Add(p.Amount)
	}

	respondOK(c, gin.H{
		"totalUsers":    users,
		"totalBookings": bookings,
		"totalOrders":   orders,
		"revenue":       revenue,
	}, "ok")
}

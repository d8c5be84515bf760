package routes

import (
	"restaurant-order-api/handlers"
	"restaurant-order-api/middleware"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	r.GET("/cate", handlers.ListCategories)
	r.GET("/table", handlers.ListTables)
	r.GET("/table/:id", handlers.GetTable)
	r.GET("/list-menu", handlers.ListMenu)
	r.GET("/popular-dishes", handlers.PopularDishes)

	r.GET("/order", handlers.ListOrders)
	r.POST("/order", handlers.PlaceOrder)
	r.GET("/order-item/:id", handlers.OrderItems)

	r.POST("/booking", handlers.CreateBooking)

	r.GET("/rating/form/:order_id", handlers.RatingForm)
	r.POST("/rating/submit", handlers.SubmitRating)

	r.POST("/internal_payment", handlers.InternalPayment)
	r.POST("/vnpay_payment", handlers.VnpayPayment)
	r.GET("/vnpay_callback", handlers.VnpayCallback)

	r.POST("/chatbox", handlers.Chatbox)
	r.POST("/upload", handlers.Upload)

	// State machine info (great for docs/Postman)
	r.GET("/state-machine", handlers.GetStateMachineInfo)

	// ── Authenticated routes ───────────────────────────────────────
	r.GET("/user", middleware.AuthRequired(), handlers.CurrentUser)

	// ── Admin area ─────────────────────────────────────────────────
	// Every route needs a valid token; user management and category
	// mutation additionally require the admin role.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		adminOnly := middleware.RoleRequired(models.RoleAdmin)

		admin.GET("/list-user", handlers.ListUsers)
		admin.GET("/user/:id", handlers.GetUser)
		admin.POST("/add-user", adminOnly, handlers.CreateUser)
		admin.PUT("/update-user/:id", adminOnly, handlers.UpdateUser)

		admin.POST("/add-table", handlers.AddTable)
		admin.PUT("/update-table/:id", handlers.UpdateTable)
		admin.GET("/table/:id", handlers.GetTable)

		admin.POST("/add-cate", adminOnly, handlers.AddCategory)
		admin.PUT("/update-cate/:id", adminOnly, handlers.UpdateCategory)
		admin.DELETE("/delete-cate/:id", adminOnly, handlers.DeleteCategory)
		admin.GET("/cate/:id", handlers.GetCategory)

		admin.POST("/add-menu", handlers.AddMenuItem)
		admin.PUT("/update-menu/:id", handlers.UpdateMenuItem)

		admin.GET("/list-booking", handlers.ListBookings)
		admin.PUT("/update-booking/:id", handlers.UpdateBookingStatus)

		admin.PUT("/update-order/:id", handlers.UpdateOrderStatus)

		admin.GET("/dashboard", handlers.Dashboard)
	}
}

package config

import (
	"log"
	"os"
	"strconv"

	"restaurant-order-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// AppConfig holds all process configuration. Loaded once at startup and
// never mutated afterwards.
type AppConfig struct {
	DBPath          string
	JWTSecret       []byte
	TokenTTLMinutes int
	BaseURL         string // frontend base, used for review links and QR payloads
	AdminPassword   string

	// VNPay gateway settings (sandbox defaults)
	VNPayURL        string
	VNPayTmnCode    string
	VNPayHashSecret string
	VNPayReturnURL  string
}

var App AppConfig

// Load reads the process configuration from the environment.
func Load() {
	App = AppConfig{
		DBPath:          getEnv("DB_PATH", "restaurant.db"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "restaurant_order_super_secret_2024")),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),
		BaseURL:         getEnv("BASE_URL", "http://localhost:5173"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		VNPayURL:        getEnv("VNPAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
		VNPayTmnCode:    getEnv("VNPAY_TMN_CODE", "D3AXQ5I2"),
		VNPayHashSecret: getEnv("VNPAY_HASH_SECRET", "T00N1I46MWFOLHQF5Z09YXS8VA9WGMO0"),
		VNPayReturnURL:  getEnv("VNPAY_RETURN_URL", "http://localhost:8080/vnpay_callback"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// InitDB opens the sqlite database and migrates all models.
func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.DiningTable{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Booking{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

// SeedDefaults makes sure the role table is populated and that at least one
// admin account exists, so a fresh database is usable immediately.
func SeedDefaults() {
	for _, name := range models.AllRoles {
		var role models.Role
		if err := DB.Where("name = ?", name).First(&role).Error; err != nil {
			DB.Create(&models.Role{Name: name})
		}
	}

	var count int64
	DB.Model(&models.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", models.RoleAdmin).
		Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(App.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash default admin password:", err)
	}
	var adminRole models.Role
	DB.Where("name = ?", models.RoleAdmin).First(&adminRole)
	admin := models.User{
		Username:     "admin",
		FullName:     "Administrator",
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []models.Role{adminRole},
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Failed to seed admin account:", err)
		return
	}
	log.Println("Seeded default admin account")
}

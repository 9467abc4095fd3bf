package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sweetshop/assets"
	"sweetshop/config"
	"sweetshop/controllers"
	"sweetshop/database"
	"sweetshop/middleware"
	"sweetshop/models"
	"sweetshop/policy"
	"sweetshop/token"
)

func initRouter(api *gin.RouterGroup, h *controllers.Handler, db *gorm.DB, maker *token.Maker) {
	api.GET("/healthcheck", func(c *gin.Context) {})

	authed := middleware.Authenticate(db, maker)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/token", h.Token)
		auth.GET("/me", authed, middleware.Authorize(policy.ReadSelf), h.Me)
		auth.PUT("/me", authed, middleware.Authorize(policy.UpdateSelf), h.UpdateMe)

		users := auth.Group("/users", authed, middleware.Authorize(policy.ManageUsers))
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}
	}

	admins := api.Group("/admins")
	{
		admins.POST("/login", h.AdminLogin)
		admins.POST("/register", authed, middleware.Authorize(policy.ManageUsers), h.RegisterAdmin)
	}

	sweets := api.Group("/sweets")
	{
		sweets.GET("", h.ListSweets)
		sweets.GET("/search", h.SearchSweets)
		sweets.GET("/category/:category", h.SweetsByCategory)
		sweets.GET("/:id", h.GetSweet)

		sweets.POST("", authed, middleware.Authorize(policy.ManageSweets), h.CreateSweet)
		sweets.PUT("/:id", authed, middleware.Authorize(policy.ManageSweets), h.UpdateSweet)
		sweets.DELETE("/:id", authed, middleware.Authorize(policy.ManageSweets), h.DeleteSweet)

		sweets.POST("/:id/purchase", authed, middleware.Authorize(policy.PurchaseSweet), h.Purchase)
		sweets.POST("/:id/restock", authed, middleware.Authorize(policy.RestockSweet), h.Restock)
		sweets.GET("/:id/transactions", authed, middleware.Authorize(policy.ManageSweets), h.ListSweetTransactions)

		sweets.PUT("/:id/image", authed, middleware.Authorize(policy.ManageImages), h.UpdateSweetImage)
		sweets.DELETE("/:id/image", authed, middleware.Authorize(policy.ManageImages), h.DeleteSweetImage)
	}
}

// seedFirstAdmin creates the initial admin account from the
// environment when no admin exists yet.
func seedFirstAdmin(db *gorm.DB, cfg config.AdminConfig, log *zap.Logger) error {
	if cfg.Username == "" || cfg.Email == "" || cfg.Password == "" {
		return nil
	}
	var existing models.User
	err := db.Where("is_admin = ?", true).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := models.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: hashed,
		IsAdmin:  true,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("seeded first admin", zap.String("username", admin.Username))
	return nil
}

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("could not migrate database", zap.Error(err))
	}
	if err := seedFirstAdmin(db, cfg.Admin, log); err != nil {
		log.Fatal("could not seed first admin", zap.Error(err))
	}

	maker := token.NewMaker(cfg.Server.SecretKey, time.Duration(cfg.Server.ExpirationMinutes)*time.Minute)

	var store assets.Store
	if cfg.ImageKit.PrivateKey != "" {
		store = assets.NewImageKit(cfg.ImageKit, log)
	}

	h := controllers.NewHandler(db, maker, store, log)

	r := gin.Default()
	api := r.Group("/api")
	initRouter(api, h, db, maker)

	if err := r.Run(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil {
		log.Fatal("failed to start Gin server", zap.Error(err))
	}
}

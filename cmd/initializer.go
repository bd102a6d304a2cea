package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"swapcycle/internal/config"
	"swapcycle/internal/handlers"
	"swapcycle/internal/repositories"
	"swapcycle/internal/services"
	"swapcycle/utils"
)

type application struct {
	errorLog   *log.Logger
	infoLog    *log.Logger
	signingKey string
	db         *sql.DB

	userRepo *repositories.UserRepository

	wsManager *WebSocketManager

	searchHandler   *handlers.SearchHandler
	productHandler  *handlers.ProductHandler
	serviceHandler  *handlers.ServiceHandler
	userHandler     *handlers.UserHandler
	tradeHandler    *handlers.TradeHandler
	favoriteHandler *handlers.FavoriteHandler
	utilsHandler    *handlers.UtilsHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, fcm *messaging.Client,
	wsManager *WebSocketManager, errorLog, infoLog *log.Logger) (*application, error) {

	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		return nil, err
	}

	imageStore := utils.NewImageStore(
		cfg.Storage.UploadDir,
		cfg.Storage.S3.Enabled,
		cfg.Storage.S3.AccessKey,
		cfg.Storage.S3.SecretKey,
		cfg.Storage.S3.Bucket,
		cfg.Storage.S3.Region,
		cfg.Storage.S3.Endpoint,
	)

	// Repositories
	productRepo := repositories.ProductRepository{DB: db}
	serviceRepo := repositories.ServiceRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}
	tradeRepo := repositories.TradeRepository{DB: db}
	favoriteRepo := repositories.FavoriteRepository{DB: db}

	// Services
	searchService := &services.SearchService{Products: &productRepo, Services: &serviceRepo}
	categoryService := &services.CategoryService{Categories: &categoryRepo}
	productService := &services.ProductService{ProductRepo: &productRepo, CategoryRepo: &categoryRepo}
	serviceService := &services.ServiceService{ServiceRepo: &serviceRepo, CategoryRepo: &categoryRepo}
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager}
	favoriteService := &services.FavoriteService{
		FavoriteRepo: &favoriteRepo,
		ProductRepo:  &productRepo,
		ServiceRepo:  &serviceRepo,
	}
	notificationService := &services.NotificationService{
		FCM:      fcm,
		Pusher:   wsManager,
		UserRepo: &userRepo,
	}
	tradeService := &services.TradeService{
		TradeRepo:   &tradeRepo,
		ProductRepo: &productRepo,
		ServiceRepo: &serviceRepo,
		UserRepo:    &userRepo,
		Notifier:    notificationService,
	}
	exchangeService := services.NewExchangeService(cfg.External.ExchangeRateAPIKey, rdb)
	geocodingService := services.NewGeocodingService(cfg.External.GoogleMapsAPIKey)

	return &application{
		errorLog:   errorLog,
		infoLog:    infoLog,
		signingKey: cfg.JWT.SigningKey,
		db:         db,
		userRepo:   &userRepo,
		wsManager:  wsManager,
		searchHandler: &handlers.SearchHandler{
			SearchService:   searchService,
			CategoryService: categoryService,
		},
		productHandler:  &handlers.ProductHandler{Service: productService, Images: imageStore},
		serviceHandler:  &handlers.ServiceHandler{Service: serviceService, Images: imageStore},
		userHandler:     &handlers.UserHandler{Service: userService},
		tradeHandler:    &handlers.TradeHandler{Service: tradeService},
		favoriteHandler: &handlers.FavoriteHandler{Service: favoriteService},
		utilsHandler:    &handlers.UtilsHandler{Exchange: exchangeService, Geocoding: geocodingService},
	}, nil
}

func openDB(driver, dsn string) (*sql.DB, error) {
	name := "mysql"
	if driver == "pgx" || driver == "postgres" {
		name = "pgx"
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

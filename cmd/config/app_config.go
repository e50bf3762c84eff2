package config

import (
	"ExpenseSnap-Backend/internal/api/handlers"
	"ExpenseSnap-Backend/internal/api/routes"
	"ExpenseSnap-Backend/internal/middleware"
	"ExpenseSnap-Backend/internal/utils"
	"ExpenseSnap-Backend/internal/utils/storage"
	"ExpenseSnap-Backend/pkg/category"
	"ExpenseSnap-Backend/pkg/conversion"
	"ExpenseSnap-Backend/pkg/expense"
	"ExpenseSnap-Backend/pkg/jwt"
	"ExpenseSnap-Backend/pkg/ocr"
	"ExpenseSnap-Backend/pkg/receipt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	documentClient := ocr.NewDocumentClient()
	keyPhraseClient := category.NewKeyPhraseClient()

	// Repository
	receiptRepository := receipt.NewReceiptRepository(db)
	expenseRepository := expense.NewExpenseRepository(db)
	categoryRepository := category.NewCategoryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	receiptService := receipt.NewReceiptService(receiptRepository, documentClient, s3)
	expenseService := expense.NewExpenseService(expenseRepository)
	categoryService := category.NewCategoryService(categoryRepository, keyPhraseClient)
	conversionService := conversion.NewConversionService(receiptRepository, expenseService)

	// Handler
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	expenseHandler := handlers.NewExpenseHandler(expenseService, validator)
	conversionHandler := handlers.NewConversionHandler(conversionService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		ReceiptHandler:    receiptHandler,
		ExpenseHandler:    expenseHandler,
		ConversionHandler: conversionHandler,
		CategoryHandler:   categoryHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

package routes

import (
	"ExpenseSnap-Backend/internal/api/handlers"
	"ExpenseSnap-Backend/internal/middleware"
	"ExpenseSnap-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	ReceiptHandler    handlers.ReceiptHandler
	ExpenseHandler    handlers.ExpenseHandler
	ConversionHandler handlers.ConversionHandler
	CategoryHandler   handlers.CategoryHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Receipts()
	c.Expenses()
	c.Categories()
	c.GuestRoute()
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		receipts.Post("", c.ReceiptHandler.UploadReceipt)
		receipts.Get("", c.ReceiptHandler.GetReceipts)
		receipts.Get("/:id", c.ReceiptHandler.GetReceiptDetail)
		receipts.Post("/:id/reanalyze", c.ReceiptHandler.Reanalyze)
		receipts.Post("/:id/convert", c.ConversionHandler.ConvertReceipt)
	}

	conversions := c.App.Group("/api/v1/conversions", c.Middleware.AuthMiddleware(c.JWTService))
	conversions.Post("/bulk", c.ConversionHandler.BulkConvert)
}

func (c *Config) Expenses() {
	expenses := c.App.Group("/api/v1/expenses", c.Middleware.AuthMiddleware(c.JWTService))
	{
		expenses.Get("", c.ExpenseHandler.GetExpenses)
		expenses.Get("/:id", c.ExpenseHandler.GetExpenseDetail)
		expenses.Delete("/:id", c.ExpenseHandler.DeleteExpense)
	}
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories", c.Middleware.AuthMiddleware(c.JWTService))
	{
		categories.Get("", c.CategoryHandler.GetCategories)
		categories.Post("/suggest", c.CategoryHandler.SuggestCategory)
		categories.Post("/corrections", c.CategoryHandler.RecordCorrection)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	// OCR completion hook: the notifier is not a user session, so no auth here.
	c.App.Post("/webhook/receipt-ready", c.ConversionHandler.ReceiptReadyWebhook)
}

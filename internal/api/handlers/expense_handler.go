package handlers

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/internal/api/presenters"
	"ExpenseSnap-Backend/pkg/expense"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ExpenseHandler interface {
		GetExpenses(c *fiber.Ctx) error
		GetExpenseDetail(c *fiber.Ctx) error
		DeleteExpense(c *fiber.Ctx) error
	}

	expenseHandler struct {
		expenseService expense.ExpenseService
		validator      *validator.Validate
	}
)

func NewExpenseHandler(expenseService expense.ExpenseService, validator *validator.Validate) ExpenseHandler {
	return &expenseHandler{
		expenseService: expenseService,
		validator:      validator,
	}
}

func (h *expenseHandler) GetExpenses(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	expenses, count, err := h.expenseService.GetExpenses(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetExpenses, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"expenses": expenses,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetExpenses)
}

func (h *expenseHandler) GetExpenseDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	expenseID := c.Params("id")

	res, err := h.expenseService.GetExpenseByID(c.Context(), expenseID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetExpenses, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetExpenses, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetExpenseDetail)
}

func (h *expenseHandler) DeleteExpense(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	expenseID := c.Params("id")

	if err := h.expenseService.DeleteExpense(c.Context(), expenseID, userID); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteExpense, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteExpense, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteExpense)
}

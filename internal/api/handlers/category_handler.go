package handlers

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/internal/api/presenters"
	"ExpenseSnap-Backend/pkg/category"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CategoryHandler interface {
		GetCategories(c *fiber.Ctx) error
		SuggestCategory(c *fiber.Ctx) error
		RecordCorrection(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
		validator       *validator.Validate
	}
)

func NewCategoryHandler(categoryService category.CategoryService, validator *validator.Validate) CategoryHandler {
	return &categoryHandler{
		categoryService: categoryService,
		validator:       validator,
	}
}

func (h *categoryHandler) GetCategories(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	categories, err := h.categoryService.GetCategories(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCategories, err)
	}

	return presenters.SuccessResponse(c, categories, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *categoryHandler) SuggestCategory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SuggestCategoryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestCategory, err)
	}

	res, err := h.categoryService.Suggest(c.Context(), userID, req.MerchantName, req.ItemDescriptions)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryBootstrap) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSuggestCategory, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestCategory)
}

func (h *categoryHandler) RecordCorrection(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RecordCorrectionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, err)
	}

	if err := h.categoryService.RecordCorrection(userID, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusAccepted, domain.MessageSuccessRecordCorrection)
}

package handlers

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/internal/api/presenters"
	"ExpenseSnap-Backend/pkg/conversion"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ConversionHandler interface {
		ConvertReceipt(c *fiber.Ctx) error
		BulkConvert(c *fiber.Ctx) error
		ReceiptReadyWebhook(c *fiber.Ctx) error
	}

	conversionHandler struct {
		conversionService conversion.ConversionService
		validator         *validator.Validate
	}
)

func NewConversionHandler(conversionService conversion.ConversionService, validator *validator.Validate) ConversionHandler {
	return &conversionHandler{
		conversionService: conversionService,
		validator:         validator,
	}
}

func (h *conversionHandler) ConvertReceipt(c *fiber.Ctx) error {
	receiptID := c.Params("id")
	req := new(domain.ConvertReceiptRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConvertReceipt, err)
		}
	}

	result := h.conversionService.ConvertReceipt(c.Context(), receiptID, req.Currency)

	if result.Status == conversion.OutcomeFailed || result.Status == conversion.OutcomeNoOCR {
		return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedConvertReceipt, errors.New(result.Error))
	}
	return presenters.SuccessResponse(c, toConversionResponse(result), fiber.StatusOK, domain.MessageSuccessConvertReceipt)
}

func (h *conversionHandler) BulkConvert(c *fiber.Ctx) error {
	req := new(domain.BulkConvertRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConvertBatch, err)
	}

	results, summary := h.conversionService.ConvertBatch(c.Context(), req.ReceiptIDs, req.Currency)

	response := domain.BulkConvertResponse{Summary: summary}
	for _, result := range results {
		response.Results = append(response.Results, toConversionResponse(result))
	}

	return presenters.SuccessResponse(c, response, fiber.StatusOK, domain.MessageSuccessConvertBatch)
}

// ReceiptReadyWebhook is the OCR-completion entry point. The notifier may
// post {receipt_id}, the wrapped {record:{id}} shape, or nothing at all; an
// empty body triggers a sweep of the unconverted backlog.
func (h *conversionHandler) ReceiptReadyWebhook(c *fiber.Ctx) error {
	event := new(domain.ReceiptReadyEvent)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(event); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	receiptID := event.ReceiptID
	if receiptID == "" && event.Record != nil {
		receiptID = event.Record.ID
	}

	if receiptID == "" {
		summary := h.conversionService.ConvertBacklog(c.Context(), "")
		return presenters.SuccessResponse(c, domain.BacklogSweepResponse{
			Inserted: summary.Inserted,
			Skipped:  summary.Skipped,
			NoOCR:    summary.NoOCR,
			Failed:   summary.Failed,
		}, fiber.StatusOK, domain.MessageSuccessConvertBatch)
	}

	result := h.conversionService.ConvertReceipt(c.Context(), receiptID, "")
	return presenters.SuccessResponse(c, toConversionResponse(result), fiber.StatusOK, domain.MessageSuccessConvertReceipt)
}

func toConversionResponse(result conversion.ConversionResult) domain.ConversionResultResponse {
	return domain.ConversionResultResponse{
		ReceiptID:    result.ReceiptID,
		Status:       result.Status,
		ExpenseID:    result.ExpenseID,
		ItemsCreated: result.ItemsCreated,
		Error:        result.Error,
	}
}

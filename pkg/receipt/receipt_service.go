package receipt

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/entities"
	"ExpenseSnap-Backend/internal/utils/storage"
	"ExpenseSnap-Backend/pkg/ocr"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error)
		GetReceipts(ctx context.Context, userID string, page, limit int) ([]domain.ReceiptResponse, int64, error)
		GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error)
		Reanalyze(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		documents         ocr.DocumentClient
		s3                storage.AwsS3
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, documents ocr.DocumentClient, s3 storage.AwsS3) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		documents:         documents,
		s3:                s3,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	receiptID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", receiptID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	receipt := &entities.Receipt{
		ID:       receiptID,
		UserID:   userUUID,
		ImageURL: imageURL,
		Status:   StatusUploaded,
	}
	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	file, err := req.ReceiptImage.Open()
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	go s.runOCR(receipt, imageData, req.ReceiptImage.Filename)

	return domain.UploadReceiptResponse{
		ReceiptID: receiptID.String(),
		ImageURL:  imageURL,
		Status:    StatusUploaded,
	}, nil
}

// runOCR drives one receipt through processing in the background: flip to
// processing, call the provider, store the verbatim payload and settle on
// processed, processed_with_warnings or failed.
func (s *receiptService) runOCR(receipt *entities.Receipt, image []byte, filename string) {
	ctx := context.Background()

	if !CanTransition(receipt.Status, StatusProcessing) {
		log.Printf("Receipt %s cannot enter processing from %s", receipt.ID, receipt.Status)
		return
	}
	receipt.Status = StatusProcessing
	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		log.Printf("Error updating receipt %s: %v", receipt.ID, err)
		return
	}

	result, payload, err := s.documents.AnalyzeReceipt(ctx, image, filename)
	now := time.Now()
	receipt.ProcessedAt = &now
	if len(payload) > 0 {
		raw := string(payload)
		receipt.RawOCRPayload = &raw
	}

	if err != nil {
		log.Printf("OCR call failed for receipt %s: %v", receipt.ID, err)
		receipt.Status = StatusFailed
		if updateErr := s.receiptRepository.UpdateReceipt(ctx, receipt); updateErr != nil {
			log.Printf("Error updating receipt %s: %v", receipt.ID, updateErr)
		}
		return
	}

	fields, err := ocr.Normalize(result)
	switch {
	case err != nil:
		receipt.Status = StatusFailed
	case len(fields.Warnings) > 0:
		receipt.Status = StatusProcessedWithWarnings
	default:
		receipt.Status = StatusProcessed
	}
	if len(fields.LowConfidence) > 0 {
		log.Printf("Receipt %s has low-confidence fields: %v", receipt.ID, fields.LowConfidence)
	}

	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		log.Printf("Error updating receipt %s: %v", receipt.ID, err)
	}
}

func (s *receiptService) GetReceipts(ctx context.Context, userID string, page, limit int) ([]domain.ReceiptResponse, int64, error) {
	receipts, count, err := s.receiptRepository.GetReceiptsByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ReceiptResponse
	for _, r := range receipts {
		response = append(response, toReceiptResponse(r))
	}
	return response, count, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}
	if receipt.UserID.String() != userID {
		return domain.ReceiptResponse{}, domain.ErrUnauthorizedAccess
	}
	return toReceiptResponse(receipt), nil
}

// Reanalyze resets the receipt to the top of the pipeline: status back to
// uploaded, stored payload and processed timestamp cleared, OCR rerun from
// the stored image. A previously created expense is left untouched; the
// conversion idempotency check reports it as a skip on the rerun.
func (s *receiptService) Reanalyze(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}
	if receipt.UserID.String() != userID {
		return domain.ReceiptResponse{}, domain.ErrUnauthorizedAccess
	}

	objectKey := s.s3.GetObjectKeyFromLink(receipt.ImageURL)
	if objectKey == "" {
		return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
	}
	imageData, err := s.s3.DownloadFile(objectKey)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	receipt.Status = StatusUploaded
	receipt.RawOCRPayload = nil
	receipt.ProcessedAt = nil
	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		return domain.ReceiptResponse{}, err
	}

	go s.runOCR(receipt, imageData, objectKey)

	return toReceiptResponse(receipt), nil
}

func toReceiptResponse(r *entities.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ID:          r.ID.String(),
		ImageURL:    r.ImageURL,
		Status:      r.Status,
		HasOCRData:  r.RawOCRPayload != nil,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

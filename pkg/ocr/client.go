package ocr

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type (
	// DocumentClient calls the external document-intelligence provider and
	// returns its raw analyze result. The provider is a black box; everything
	// downstream works off the returned document tree.
	DocumentClient interface {
		AnalyzeReceipt(ctx context.Context, image []byte, filename string) (AnalyzeResult, []byte, error)
	}

	documentClient struct {
		httpClient *http.Client
	}
)

func NewDocumentClient() DocumentClient {
	return &documentClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// AnalyzeReceipt posts the receipt image to the provider's analyze endpoint
// and returns both the decoded result and the verbatim response body, so the
// caller can persist the raw payload for later reprocessing.
func (c *documentClient) AnalyzeReceipt(ctx context.Context, image []byte, filename string) (AnalyzeResult, []byte, error) {
	endpoint := utils.GetConfig("DOCINTEL_ENDPOINT")
	if endpoint == "" {
		return AnalyzeResult{}, nil, domain.ErrOCRProviderUnavailable
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return AnalyzeResult{}, nil, err
	}
	if _, err = part.Write(image); err != nil {
		return AnalyzeResult{}, nil, err
	}
	if err = writer.Close(); err != nil {
		return AnalyzeResult{}, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return AnalyzeResult{}, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if key := utils.GetConfig("DOCINTEL_KEY"); key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AnalyzeResult{}, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return AnalyzeResult{}, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return AnalyzeResult{}, nil, fmt.Errorf("document intelligence error: %s - %s", resp.Status, string(payload))
	}

	result, err := DecodePayload(payload)
	if err != nil {
		return AnalyzeResult{}, payload, err
	}
	return result, payload, nil
}

// DecodePayload parses a stored or freshly returned provider payload. Both
// the bare result and the wrapped {"analyzeResult": ...} envelope are
// accepted; anything else decodes to an empty document list.
func DecodePayload(payload []byte) (AnalyzeResult, error) {
	var envelope struct {
		AnalyzeResult *AnalyzeResult     `json:"analyzeResult"`
		Documents     []AnalyzedDocument `json:"documents"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return AnalyzeResult{}, fmt.Errorf("decode analyze payload: %w", err)
	}
	if envelope.AnalyzeResult != nil {
		return *envelope.AnalyzeResult, nil
	}
	return AnalyzeResult{Documents: envelope.Documents}, nil
}

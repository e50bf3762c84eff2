package category

import (
	"ExpenseSnap-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type (
	// KeyPhraseClient talks to the optional semantic text-analysis service.
	// When the service is unconfigured the client reports unavailable and the
	// suggestion engine simply skips the enrichment path.
	KeyPhraseClient interface {
		Available() bool
		ExtractKeyPhrases(ctx context.Context, text string) ([]string, error)
	}

	keyPhraseClient struct {
		httpClient *http.Client
	}
)

func NewKeyPhraseClient() KeyPhraseClient {
	return &keyPhraseClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *keyPhraseClient) Available() bool {
	return utils.GetConfig("TEXT_ANALYTICS_ENDPOINT") != ""
}

func (c *keyPhraseClient) ExtractKeyPhrases(ctx context.Context, text string) ([]string, error) {
	endpoint := utils.GetConfig("TEXT_ANALYTICS_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("text analytics service not configured")
	}

	requestBody := map[string]interface{}{
		"documents": []map[string]string{
			{"id": "1", "language": "en", "text": text},
		},
	}
	payload, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := utils.GetConfig("TEXT_ANALYTICS_KEY"); key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("text analytics error: %s - %s", resp.Status, string(bodyBytes))
	}

	var result struct {
		Documents []struct {
			KeyPhrases []string `json:"keyPhrases"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Documents) == 0 {
		return nil, nil
	}
	return result.Documents[0].KeyPhrases, nil
}

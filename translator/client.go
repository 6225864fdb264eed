package translator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kb-cms/models"
)

// Client translates text between languages. Implementations report every
// failure as a transient dependency error so callers can fall back to the
// untranslated text.
type Client interface {
	Translate(text, from, to string) (string, error)
}

// HTTPClient calls an Azure-style translation endpoint.
type HTTPClient struct {
	endpoint string
	apiKey   string
	region   string
	client   *http.Client
}

func NewHTTPClient(endpoint, apiKey, region string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		region:   region,
		client:   &http.Client{Timeout: timeout},
	}
}

type translateItem struct {
	Text string `json:"Text"`
}

type translateResult struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

func (c *HTTPClient) Translate(text, from, to string) (string, error) {
	if text == "" {
		return "", nil
	}

	body, err := json.Marshal([]translateItem{{Text: text}})
	if err != nil {
		return "", models.NewErrorTransient("translator: encode request", err)
	}

	endpoint := fmt.Sprintf("%s/translate?api-version=3.0&from=%s&to=%s",
		c.endpoint, url.QueryEscape(from), url.QueryEscape(to))

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", models.NewErrorTransient("translator: build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	if c.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", c.region)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", models.NewErrorTransient("translator: request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", models.NewErrorTransient(
			fmt.Sprintf("translator: unexpected status %d: %s", resp.StatusCode, payload), nil)
	}

	var results []translateResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", models.NewErrorTransient("translator: decode response", err)
	}
	if len(results) == 0 || len(results[0].Translations) == 0 {
		return "", models.NewErrorTransient("translator: empty response", nil)
	}

	return results[0].Translations[0].Text, nil
}

// Disabled reports the translator as unavailable on every call.
type Disabled struct{}

func (Disabled) Translate(string, string, string) (string, error) {
	return "", models.NewErrorTransient("translator disabled", nil)
}

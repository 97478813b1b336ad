package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultFeedURL is the community mirror of the Systembolaget product feed.
const DefaultFeedURL = "https://susbolaget.emrik.org/v1/products"

// FeedProduct is a raw product row as the upstream feed serves it. Nearly
// every field is optional in practice.
type FeedProduct struct {
	ProductID         string      `json:"productId"`
	ProductNumber     string      `json:"productNumber"`
	ProductNameBold   string      `json:"productNameBold"`
	ProductNameThin   string      `json:"productNameThin"`
	ProducerName      string      `json:"producerName"`
	IsOrganic         bool        `json:"isOrganic"`
	BottleText        string      `json:"bottleText"`
	Volume            float64     `json:"volume"`
	Price             float64     `json:"price"`
	Country           string      `json:"country"`
	OriginLevel1      string      `json:"originLevel1"`
	CategoryLevel1    string      `json:"categoryLevel1"`
	CategoryLevel2    string      `json:"categoryLevel2"`
	AlcoholPercentage float64     `json:"alcoholPercentage"`
	PackagingLevel1   string      `json:"packagingLevel1"`
	Images            []FeedImage `json:"images"`
}

type FeedImage struct {
	ImageURL string `json:"imageUrl"`
}

// FeedClient fetches the full product feed over HTTP. Transient failures
// are retried with backoff; the overall request is bounded by the client
// timeout and the caller's context.
type FeedClient struct {
	url        string
	httpClient *http.Client
}

// NewFeedClient creates a feed client. An empty url selects DefaultFeedURL;
// a zero timeout defaults to 30 seconds.
func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	if strings.TrimSpace(url) == "" {
		url = DefaultFeedURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &FeedClient{
		url:        url,
		httpClient: rc.StandardClient(),
	}
}

// Fetch downloads and decodes the whole feed. The feed has no pagination;
// a single GET returns every product.
func (c *FeedClient) Fetch(ctx context.Context) ([]FeedProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.InfoContext(ctx, "fetching product feed", "url", c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request product feed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("read feed response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.ErrorContext(ctx, "received product feed response", "status", resp.StatusCode)
		return nil, &StatusError{
			Operation:  "product feed",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(buf.String()),
		}
	}

	var products []FeedProduct
	if err := json.Unmarshal(buf.Bytes(), &products); err != nil {
		return nil, fmt.Errorf("parse feed response: %w", err)
	}
	return products, nil
}

package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	sourcePageSize = 50
	sourceMaxPages = 10
)

// Source delivers raw gift records from somewhere. The live marketplace
// client implements it; tests substitute fixtures.
type Source interface {
	FetchGifts() ([]RawGift, error)
}

// MarketplaceClient fetches listed gifts from the upstream marketplace
// API with bearer authentication. Failures are returned as errors; the
// service layer decides to fall back, never to retry.
type MarketplaceClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

// NewMarketplaceClient builds a client with a bounded per-request timeout.
func NewMarketplaceClient(baseURL, apiKey string) *MarketplaceClient {
	return &MarketplaceClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

type sourceGift struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Price      float64           `json:"price"`
	PhotoURL   string            `json:"photo_url"`
	Attributes map[string]string `json:"attributes"`
	// Pointer so records that omit the flag default to transferable.
	IsTransferable *bool `json:"is_transferable"`
	SalesCount     int   `json:"sales_count"`
}

type sourcePage struct {
	Gifts []sourceGift `json:"gifts"`
}

// FetchGifts pages through the listed gifts. The loop is capped at
// sourceMaxPages so a misbehaving upstream cannot stall a request, and
// stops early on a short page.
func (c *MarketplaceClient) FetchGifts() ([]RawGift, error) {
	var records []RawGift

	for page := 0; page < sourceMaxPages; page++ {
		gifts, err := c.fetchPage(page * sourcePageSize)
		if err != nil {
			return nil, err
		}
		for _, g := range gifts {
			records = append(records, toRawGift(g))
		}
		if len(gifts) < sourcePageSize {
			break
		}
	}

	return records, nil
}

func (c *MarketplaceClient) fetchPage(offset int) ([]sourceGift, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/gifts?listed=true&limit=%d&offset=%d", c.baseURL, sourcePageSize, offset))
	req.Header.SetMethod(fasthttp.MethodGet)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if err := c.client.DoTimeout(req, resp, 10*time.Second); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("gifts API returned status %d", resp.StatusCode())
	}

	var page sourcePage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("malformed gifts payload: %w", err)
	}
	return page.Gifts, nil
}

func toRawGift(g sourceGift) RawGift {
	name := g.Name
	if model, ok := g.Attributes["model"]; ok && model != "" {
		name = model
	}
	transferable := true
	if g.IsTransferable != nil {
		transferable = *g.IsTransferable
	}
	return RawGift{
		ID:             g.ID,
		Name:           name,
		BasePrice:      g.Price,
		ImageURL:       g.PhotoURL,
		IsTransferable: transferable,
		SalesCount:     g.SalesCount,
	}
}

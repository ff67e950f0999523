package catalog

import (
	"encoding/json"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

// startStubMarketplace serves pages of gifts on a loopback port and
// records the bearer tokens it saw.
func startStubMarketplace(t *testing.T, handler fasthttp.RequestHandler) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = fasthttp.Serve(ln, handler) }()
	t.Cleanup(func() { _ = ln.Close() })

	return "http://" + ln.Addr().String()
}

func TestMarketplaceClientPagination(t *testing.T) {
	var tokens []string
	baseURL := startStubMarketplace(t, func(ctx *fasthttp.RequestCtx) {
		tokens = append(tokens, string(ctx.Request.Header.Peek("Authorization")))

		offset, _ := ctx.QueryArgs().GetUint("offset")
		var page sourcePage
		if offset == 0 {
			for i := 0; i < sourcePageSize; i++ {
				page.Gifts = append(page.Gifts, sourceGift{
					ID:    fmt.Sprintf("g%d", i),
					Name:  fmt.Sprintf("Gift %d", i),
					Price: 10,
				})
			}
		} else {
			page.Gifts = []sourceGift{{ID: "last", Name: "Last Gift", Price: 5}}
		}
		body, _ := json.Marshal(page)
		ctx.SetContentType("application/json")
		ctx.SetBody(body)
	})

	client := NewMarketplaceClient(baseURL, "secret")
	records, err := client.FetchGifts()
	require.NoError(t, err)

	// One full page plus one short page stops the loop.
	assert.Len(t, records, sourcePageSize+1)
	require.Len(t, tokens, 2)
	assert.Equal(t, "Bearer secret", tokens[0])
}

func TestMarketplaceClientNonOKStatus(t *testing.T) {
	baseURL := startStubMarketplace(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
	})

	client := NewMarketplaceClient(baseURL, "")
	_, err := client.FetchGifts()
	assert.Error(t, err)
}

func TestMarketplaceClientMalformedPayload(t *testing.T) {
	baseURL := startStubMarketplace(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("not json")
	})

	client := NewMarketplaceClient(baseURL, "")
	_, err := client.FetchGifts()
	assert.Error(t, err)
}

func TestToRawGift(t *testing.T) {
	flag := false
	raw := toRawGift(sourceGift{
		ID:             "g1",
		Name:           "raw name",
		Price:          42,
		PhotoURL:       "https://cdn.example/g1.png",
		Attributes:     map[string]string{"model": "Toy Bear"},
		IsTransferable: &flag,
		SalesCount:     3,
	})

	assert.Equal(t, "Toy Bear", raw.Name, "attributes.model wins over the raw name")
	assert.InDelta(t, 42, raw.BasePrice, 1e-9)
	assert.False(t, raw.IsTransferable)
	assert.Equal(t, 3, raw.SalesCount)

	raw = toRawGift(sourceGift{ID: "g2", Name: "Hex Pot"})
	assert.True(t, raw.IsTransferable, "transferability defaults to true when omitted")
}

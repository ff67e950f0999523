package handlers

import (
	"github.com/valyala/fasthttp"

	"github.com/Nikusik161/giftprizes-webapp/internal/catalog"
)

// AllGifts serves the full normalized catalog. The catalog path never
// fails: upstream trouble degrades to the fallback table inside the
// service.
func AllGifts(svc *catalog.Service) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		respondData(ctx, svc.AllGifts())
	}
}

// SearchGifts filters and sorts the cached catalog snapshot.
// GET params: search_term, min_price, max_price, sort_by.
func SearchGifts(svc *catalog.Service) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		q := catalog.Query{
			Term:     queryString(ctx, "search_term"),
			MinPrice: queryFloat(ctx, "min_price"),
			MaxPrice: queryFloat(ctx, "max_price"),
			SortBy:   queryString(ctx, "sort_by"),
		}
		respondData(ctx, svc.Search(q))
	}
}

// GiftPackages builds budget bundles. GET param: budget (> 0).
func GiftPackages(svc *catalog.Service) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		budget := queryFloat(ctx, "budget")
		if budget == nil || *budget <= 0 {
			respondError(ctx, "budget is required and must be greater than 0")
			return
		}
		respondData(ctx, svc.Packages(*budget))
	}
}

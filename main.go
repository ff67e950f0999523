package main

import (
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"github.com/Nikusik161/giftprizes-webapp/internal/catalog"
	"github.com/Nikusik161/giftprizes-webapp/internal/config"
	"github.com/Nikusik161/giftprizes-webapp/internal/db"
	"github.com/Nikusik161/giftprizes-webapp/internal/http/handlers"
	appmw "github.com/Nikusik161/giftprizes-webapp/internal/http/middleware"
	"github.com/Nikusik161/giftprizes-webapp/internal/payment"
	ui "github.com/Nikusik161/giftprizes-webapp/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	handlers.InitPrometheusMetrics()

	var source catalog.Source
	if cfg.GiftsAPIURL != "" {
		source = catalog.NewMarketplaceClient(cfg.GiftsAPIURL, cfg.GiftsAPIKey)
	} else {
		log.Printf("no gifts API configured, serving the fallback catalog")
	}
	catalogSvc := catalog.NewService(source, catalog.NewCache(cfg.CacheTTL, nil))
	catalogSvc.OnCacheHit = handlers.CountCacheHit
	catalogSvc.OnCacheMiss = handlers.CountCacheMiss

	simulator := payment.NewSimulator(nil)

	r := router.New()

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})
	r.GET("/metrics", handlers.MetricsHandler())

	serveIndex := func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBody(ui.Index())
	}
	r.GET("/", serveIndex)
	r.GET("/index.html", serveIndex)
	r.ServeFS("/static/{filepath:*}", ui.StaticFS())

	r.POST("/api/register_activity", handlers.RegisterActivity(sqlDB))
	r.GET("/api/get_statistics", handlers.Statistics(sqlDB))
	r.GET("/api/get_top_buyers", handlers.TopBuyers(sqlDB))
	r.GET("/api/get_popular_gifts", handlers.PopularGifts(sqlDB))

	r.GET("/api/get_all_gifts", handlers.AllGifts(catalogSvc))
	r.GET("/api/search_gifts", handlers.SearchGifts(catalogSvc))
	r.GET("/api/get_gift_packages", handlers.GiftPackages(catalogSvc))

	r.POST("/api/generate_payment", handlers.GeneratePayment())
	r.POST("/api/check_payment", handlers.CheckPayment(simulator))
	r.POST("/api/purchase_gift", handlers.PurchaseGift(sqlDB, catalogSvc, simulator))
	r.POST("/api/update_purchase_status", handlers.UpdatePurchaseStatus(sqlDB))

	r.GET("/api/get_button_status", handlers.ButtonStatus(sqlDB))
	r.POST("/api/set_button_status", handlers.SetButtonStatus(sqlDB))

	// Global middleware chain: request logger + metrics, then CORS, then router.
	handler := handlers.RequestLogger(appmw.CORS(r.Handler))

	log.Printf("giftprizes webapp listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "github.com/Nikusik161/giftprizes-webapp/internal/db"
)

type activityRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username"`
}

// RegisterActivity upserts the user and their online presence.
func RegisterActivity(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req activityRequest
		if err := decodeBody(ctx, &req); err != nil {
			respondError(ctx, "invalid JSON body")
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(ctx, validationMessage(err))
			return
		}

		var username *string
		if req.Username != "" {
			username = &req.Username
		}
		if err := dbpkg.RecordActivity(gdb, req.UserID, username); err != nil {
			respondFatal(ctx, err)
			return
		}
		respond(ctx, map[string]any{"success": true, "message": "Activity registered"})
	}
}

// Statistics serves the live aggregate snapshot.
func Statistics(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stats, err := dbpkg.GetStatistics(gdb)
		if err != nil {
			respondFatal(ctx, err)
			return
		}
		respondData(ctx, stats)
	}
}

// TopBuyers serves the spending ranking. GET param: limit (default 10).
func TopBuyers(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		buyers, err := dbpkg.GetTopBuyers(gdb, queryInt(ctx, "limit", 10))
		if err != nil {
			respondFatal(ctx, err)
			return
		}
		respondData(ctx, buyers)
	}
}

// PopularGifts serves the sales ranking. GET param: limit (default 10).
func PopularGifts(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		gifts, err := dbpkg.GetPopularGifts(gdb, queryInt(ctx, "limit", 10))
		if err != nil {
			respondFatal(ctx, err)
			return
		}
		respondData(ctx, gifts)
	}
}

// ButtonStatus reports a front-end feature flag. GET param: button_id.
func ButtonStatus(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		buttonID := queryString(ctx, "button_id")
		if buttonID == "" {
			respondError(ctx, "button_id is required")
			return
		}
		enabled, err := dbpkg.GetButtonStatus(gdb, buttonID)
		if err != nil {
			respondFatal(ctx, err)
			return
		}
		respond(ctx, map[string]any{"success": true, "enabled": enabled})
	}
}

type setButtonRequest struct {
	ButtonID string `json:"button_id" validate:"required"`
	Enabled  *bool  `json:"enabled" validate:"required"`
}

// SetButtonStatus toggles a front-end feature flag.
func SetButtonStatus(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req setButtonRequest
		if err := decodeBody(ctx, &req); err != nil {
			respondError(ctx, "invalid JSON body")
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(ctx, validationMessage(err))
			return
		}
		if err := dbpkg.SetButtonStatus(gdb, req.ButtonID, *req.Enabled); err != nil {
			respondFatal(ctx, err)
			return
		}
		respond(ctx, map[string]any{"success": true})
	}
}

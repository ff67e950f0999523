package handlers

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
)

// RequestLogger returns fasthttp middleware that logs method, path, status,
// duration and counts the request in Prometheus.
func RequestLogger(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		status := ctx.Response.StatusCode()
		log.Printf("%s %s -> %d (%s) ip=%s", ctx.Method(), ctx.Path(), status, time.Since(start), ctx.RemoteAddr())
		if apiRequestsTotal != nil {
			apiRequestsTotal.WithLabelValues(string(ctx.Path()), strconv.Itoa(status)).Inc()
		}
	}
}

// respond writes the flat {success, ...} envelope every API endpoint uses.
func respond(ctx *fasthttp.RequestCtx, payload map[string]any) {
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func respondData(ctx *fasthttp.RequestCtx, data any) {
	respond(ctx, map[string]any{"success": true, "data": data})
}

// respondError reports a caller mistake. The envelope carries the failure;
// the HTTP status stays 200 for the front-end's uniform handling.
func respondError(ctx *fasthttp.RequestCtx, msg string) {
	respond(ctx, map[string]any{"success": false, "error": msg})
}

// respondFatal is for storage loss and other conditions the caller cannot fix.
func respondFatal(ctx *fasthttp.RequestCtx, err error) {
	log.Printf("internal error on %s: %v", ctx.Path(), err)
	ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	respond(ctx, map[string]any{"success": false, "error": "internal error"})
}

// decodeBody parses a flat JSON POST body into dst. An empty body decodes
// to the zero value so validation produces the user-facing message.
func decodeBody(ctx *fasthttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func queryString(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// queryFloat returns the parsed value or nil when absent/unparseable.
func queryFloat(ctx *fasthttp.RequestCtx, key string) *float64 {
	raw := queryString(ctx, key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryInt(ctx *fasthttp.RequestCtx, key string, def int) int {
	raw := queryString(ctx, key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

package handlers

import (
	"errors"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"github.com/Nikusik161/giftprizes-webapp/internal/catalog"
	dbpkg "github.com/Nikusik161/giftprizes-webapp/internal/db"
	"github.com/Nikusik161/giftprizes-webapp/internal/payment"
)

type paymentRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// GeneratePayment issues an invoice against the deposit wallet.
func GeneratePayment() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req paymentRequest
		if err := decodeBody(ctx, &req); err != nil {
			respondError(ctx, "invalid JSON body")
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(ctx, validationMessage(err))
			return
		}

		inv := payment.GenerateInvoice(req.Amount)
		respond(ctx, map[string]any{
			"success":        true,
			"invoice_id":     inv.InvoiceID,
			"wallet_address": inv.WalletAddress,
			"amount":         inv.Amount,
		})
	}
}

// CheckPayment reports the simulated payment lookup. A missing payment
// is a normal negative result, not an error.
func CheckPayment(sim *payment.Simulator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if sim.CheckPayment() {
			respond(ctx, map[string]any{"success": true, "paid": true, "message": "Payment confirmed"})
			return
		}
		respond(ctx, map[string]any{"success": true, "paid": false, "message": "Payment not found"})
	}
}

type purchaseRequest struct {
	UserID            string         `json:"user_id" validate:"required"`
	Username          string         `json:"username"`
	GiftID            string         `json:"gift_id" validate:"required"`
	Amount            float64        `json:"amount" validate:"required,gt=0"`
	RecipientUsername string         `json:"recipient_username"`
	WalletAddress     string         `json:"wallet_address"`
	Metadata          map[string]any `json:"metadata"`
}

// PurchaseGift resolves the gift against the catalog, runs the simulated
// transfer and, when it succeeds, registers the purchase.
func PurchaseGift(gdb *gorm.DB, svc *catalog.Service, sim *payment.Simulator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req purchaseRequest
		if err := decodeBody(ctx, &req); err != nil {
			respondError(ctx, "invalid JSON body")
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(ctx, validationMessage(err))
			return
		}

		gift, err := svc.FindByID(req.GiftID)
		if errors.Is(err, catalog.ErrGiftNotFound) {
			respond(ctx, map[string]any{"success": false, "message": "Gift is no longer available"})
			return
		}

		if !sim.ExecutePurchase() {
			respond(ctx, map[string]any{"success": false, "message": "Purchase failed, please try again"})
			return
		}

		var username *string
		if req.Username != "" {
			username = &req.Username
		}
		purchaseID, err := dbpkg.RecordPurchase(gdb, dbpkg.PurchaseInput{
			UserID:            req.UserID,
			Username:          username,
			GiftID:            gift.ID,
			GiftName:          gift.Name,
			Amount:            req.Amount,
			RecipientUsername: req.RecipientUsername,
			WalletAddress:     req.WalletAddress,
			Metadata:          req.Metadata,
		})
		if err != nil {
			respondFatal(ctx, err)
			return
		}

		if purchasesTotal != nil {
			purchasesTotal.Inc()
			purchaseRevenueTotal.Add(req.Amount)
		}
		respond(ctx, map[string]any{
			"success":     true,
			"message":     "Gift purchased successfully",
			"purchase_id": purchaseID,
		})
	}
}

type statusRequest struct {
	PurchaseID string `json:"purchase_id" validate:"required"`
	Status     string `json:"status" validate:"required"`
}

// UpdatePurchaseStatus moves a purchase through its lifecycle.
func UpdatePurchaseStatus(gdb *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req statusRequest
		if err := decodeBody(ctx, &req); err != nil {
			respondError(ctx, "invalid JSON body")
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(ctx, validationMessage(err))
			return
		}

		err := dbpkg.UpdatePurchaseStatus(gdb, req.PurchaseID, req.Status)
		switch {
		case errors.Is(err, dbpkg.ErrUnknownStatus),
			errors.Is(err, dbpkg.ErrInvalidTransition),
			errors.Is(err, dbpkg.ErrPurchaseNotFound):
			respondError(ctx, err.Error())
		case err != nil:
			respondFatal(ctx, err)
		default:
			respond(ctx, map[string]any{"success": true})
		}
	}
}

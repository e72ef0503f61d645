package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
	internalaws "github.com/mockcommerce/checkout-sandbox/internal/aws"
	"github.com/mockcommerce/checkout-sandbox/internal/checkout"
	"github.com/mockcommerce/checkout-sandbox/internal/delegation"
	"github.com/mockcommerce/checkout-sandbox/internal/orders"
	"github.com/mockcommerce/checkout-sandbox/internal/validation"
)

// Deps groups the collaborators the HTTP layer dispatches into.
type Deps struct {
	Engine     *checkout.Engine
	Issuer     *delegation.Issuer
	Orders     *orders.Store
	Publisher  *internalaws.Publisher       // nil disables order events
	Metrics    *internalaws.MetricsReporter // nil disables metric pushes
	Logger     *zap.Logger
	APIVersion string
}

// RegisterRoutes wires all sandbox routes onto the engine.
func RegisterRoutes(r *gin.Engine, d Deps) {
	v := validation.New()

	r.GET("/", indexPage)
	r.GET("/health", d.health)
	r.POST("/webhooks/psp", d.inboundWebhook)

	authed := r.Group("/", RequireAuth(), RequireAPIVersion(d.APIVersion))

	authed.POST("/checkout_sessions", func(c *gin.Context) {
		var req validation.CreateCheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		sess, err := d.Engine.Create(c.Request.Context(), checkout.CreateInput{
			Items:              req.Items,
			Buyer:              req.Buyer,
			FulfillmentAddress: req.FulfillmentAddress,
		})
		if err != nil {
			d.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sess)
	})

	authed.GET("/checkout_sessions/:id", func(c *gin.Context) {
		sess, err := d.Engine.Retrieve(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	})

	authed.POST("/checkout_sessions/:id", func(c *gin.Context) {
		var req validation.UpdateCheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		sess, err := d.Engine.Update(c.Request.Context(), c.Param("id"), checkout.UpdateInput{
			Items:               req.Items,
			FulfillmentAddress:  req.FulfillmentAddress,
			FulfillmentOptionID: req.FulfillmentOptionID,
		})
		if err != nil {
			d.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	})

	authed.POST("/checkout_sessions/:id/complete", func(c *gin.Context) {
		var req validation.CompleteCheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		ctx := c.Request.Context()
		sess, err := d.Engine.Complete(ctx, c.Param("id"), req.Buyer, req.PaymentData)
		if err != nil {
			d.writeError(c, err)
			return
		}
		if err := d.Publisher.PublishOrderCreated(ctx, internalaws.OrderCreatedEvent{
			OrderID:           sess.Order.ID,
			CheckoutSessionID: sess.ID,
			PermalinkURL:      sess.Order.PermalinkURL,
			CreatedAt:         sess.Order.CreatedAt,
		}); err != nil {
			// the completion already happened; the event is best-effort
			d.Logger.Warn("order event publish failed", zap.String("order_id", sess.Order.ID), zap.Error(err))
		}
		c.JSON(http.StatusOK, sess)
	})

	authed.POST("/checkout_sessions/:id/cancel", func(c *gin.Context) {
		sess, err := d.Engine.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	})

	authed.POST("/agentic_commerce/delegate_payment", func(c *gin.Context) {
		var req validation.DelegatePaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		result, err := d.Issuer.Delegate(c.Request.Context(), delegation.DelegateInput{
			PaymentMethod:  req.PaymentMethod,
			Allowance:      req.Allowance,
			BillingAddress: req.BillingAddress,
			RiskSignals:    req.RiskSignals,
			Metadata:       req.Metadata,
		})
		if err != nil {
			d.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	})
}

// writeError converts any failure into the taxonomy shape. Internal causes
// are logged here and never leak to the caller.
func (d Deps) writeError(c *gin.Context, err error) {
	ae := apierror.From(err)
	if ae.Code == apierror.CodeInternal {
		cause := errors.Unwrap(ae)
		d.Logger.Error("operation failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(cause),
		)
	}
	c.JSON(ae.HTTPStatus(), ae)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// health reports liveness plus the live record counts, and pushes them to
// CloudWatch when a reporter is configured.
func (d Deps) health(c *gin.Context) {
	ctx := c.Request.Context()

	sessions, err := d.Engine.Count(ctx)
	if err != nil {
		d.writeError(c, err)
		return
	}
	orderCount, err := d.Orders.Count(ctx)
	if err != nil {
		d.writeError(c, err)
		return
	}
	tokens, err := d.Issuer.Count(ctx)
	if err != nil {
		d.writeError(c, err)
		return
	}

	if err := d.Metrics.PublishCounts(ctx, sessions, orderCount, tokens); err != nil {
		d.Logger.Warn("metrics publish failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"checkout_sessions": sessions,
		"orders":            orderCount,
		"payment_tokens":    tokens,
	})
}

// inboundWebhook is a stub receiver: it logs the payload and acknowledges.
func (d Deps) inboundWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		body = nil
	}
	d.Logger.Info("webhook received",
		zap.Int("bytes", len(body)),
		zap.ByteString("payload", body),
	)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>Checkout Sandbox</title></head>
<body>
<h1>Checkout Sandbox</h1>
<p>Mock merchant backend for checkout protocol testing. All state is in-process and lost on restart.</p>
<ul>
<li><code>POST /checkout_sessions</code> — create a session</li>
<li><code>GET /checkout_sessions/:id</code> — retrieve</li>
<li><code>POST /checkout_sessions/:id</code> — update items, address, or shipping choice</li>
<li><code>POST /checkout_sessions/:id/complete</code> — complete with a payment token</li>
<li><code>POST /checkout_sessions/:id/cancel</code> — cancel</li>
<li><code>POST /agentic_commerce/delegate_payment</code> — mint a payment token</li>
<li><code>GET /health</code> — liveness and record counts</li>
</ul>
<p>Requests need <code>Authorization: Bearer &lt;anything&gt;</code> and a matching <code>API-Version</code> header.</p>
</body>
</html>`

func indexPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexHTML)
}

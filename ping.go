package synthex

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Ping reports whether the API answers a health check with a 2xx status.
// It never returns an error: transport failures and error statuses both
// report false.
//
// Example:
//
//	if !client.Ping(ctx) {
//	    log.Println("Synthex API is unreachable")
//	}
func (c *Client) Ping(ctx context.Context) bool {
	if _, _, err := c.request(ctx, http.MethodGet, pingEndpoint, nil, nil); err != nil {
		c.logger.Debug("ping failed", zap.Error(err))
		return false
	}
	return true
}

package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ViewerIP resolves the reporting viewer's address, preferring the first hop
// of X-Forwarded-For when the request came through a proxy.
func ViewerIP(ctx *gin.Context) string {
	if forwarded := ctx.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(ctx.Request.RemoteAddr)
	if err != nil {
		return "unknown"
	}

	return host
}

// ViewerCountry reads the edge-provided country header; analytics rows always
// carry a country tag, "unknown" when the edge did not supply one.
func ViewerCountry(ctx *gin.Context) string {
	if country := ctx.GetHeader("X-Viewer-Country"); country != "" {
		return country
	}

	return "unknown"
}

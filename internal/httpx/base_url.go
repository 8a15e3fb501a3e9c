package httpx

import (
	"net/http"
	"strings"
)

// BaseURL devuelve "scheme://host" para armar URLs absolutas.
// Si hay una URL pública configurada gana esa; si no, se deduce del request
// (respetando X-Forwarded-Proto y X-Forwarded-Host detrás de un proxy).
func BaseURL(request *http.Request, configured string) string {
	if configured = strings.TrimRight(strings.TrimSpace(configured), "/"); configured != "" {
		return configured
	}
	if request == nil {
		return ""
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	if proto := firstHeaderValue(request, "X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	host := request.Host
	if forwarded := firstHeaderValue(request, "X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}
	if host == "" {
		return ""
	}
	return scheme + "://" + host
}

func firstHeaderValue(request *http.Request, key string) string {
	value, _, _ := strings.Cut(request.Header.Get(key), ",")
	return strings.ToLower(strings.TrimSpace(value))
}

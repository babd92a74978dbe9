package offline

import (
	"io"
	"net/http"
	"strings"
)

// hopHeaders are connection-scoped and never forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// ServeHTTP intercepts an incoming request, answers it through Fetch and
// writes the result back. Network failures on a miss become 502.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Fetch(h.outboundRequest(r))
	if err != nil {
		h.logger.Debug().Err(err).Str("url", r.URL.RequestURI()).Msg("Request failed")
		http.Error(w, "upstream request failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Debug().Err(err).Str("url", r.URL.RequestURI()).Msg("Failed to write response")
	}
}

// outboundRequest rewrites an incoming server request into a client request
// aimed at the origin.
func (h *Handler) outboundRequest(r *http.Request) *http.Request {
	out := r.Clone(r.Context())
	out.URL = h.resolve(r.URL)
	out.Host = h.origin.Host
	out.RequestURI = ""
	if r.ContentLength == 0 {
		out.Body = nil
	}
	removeHopHeaders(out.Header)
	return out
}

func copyHeader(dst, src http.Header) {
	for key, values := range src {
		if isHopHeader(key) {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func removeHopHeaders(h http.Header) {
	for _, key := range hopHeaders {
		h.Del(key)
	}
}

func isHopHeader(key string) bool {
	for _, hop := range hopHeaders {
		if strings.EqualFold(hop, key) {
			return true
		}
	}
	return false
}

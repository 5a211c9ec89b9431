package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/openagri/aegis/pkg/config"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// clientIP resolves the caller's address for audit records. X-Forwarded-For
// is honored only when the direct peer is a configured trusted proxy.
func clientIP(cfg *config.Config, r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" && cfg != nil && cfg.IsTrustedProxy(host) {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return host
}

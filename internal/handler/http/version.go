package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-gene-consent/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
}

// getServerVersion answers with the node version as plain text, or as a
// JSON object when the caller accepts application/json.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		utils.WriteJSON(w, versionResponse{Version: version}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(version))
}

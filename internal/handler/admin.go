package handler

import (
	"net/http"

	"travio-api/internal/kvstore"
	"travio-api/internal/service"
	"travio-api/pkg/apierror"
	"travio-api/pkg/response"
)

// AdminHandler exposes the offline cache for inspection and manual refresh.
type AdminHandler struct {
	kv        kvstore.Store
	refresher *service.Refresher
	backend   string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(kv kvstore.Store, refresher *service.Refresher, backend string) *AdminHandler {
	return &AdminHandler{kv: kv, refresher: refresher, backend: backend}
}

// CacheStatsResponse describes the persistent store contents.
type CacheStatsResponse struct {
	Backend string           `json:"backend"`
	Keys    map[string]int64 `json:"keys"`
}

// GetCacheStats handles GET /api/v1/admin/cache
func (h *AdminHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.kv.Stats(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to read cache stats"))
		return
	}

	response.OK(w, CacheStatsResponse{Backend: h.backend, Keys: stats})
}

// RefreshCache handles POST /api/v1/admin/cache/refresh
func (h *AdminHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		response.Error(w, apierror.BadRequest("refresher is not configured"))
		return
	}

	response.OK(w, h.refresher.RunNow(r.Context()))
}

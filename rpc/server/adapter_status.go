package server

import (
	"net/http"

	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
)

// NewStatusServerAdapter creates the adapter serving the health and metrics routes
func NewStatusServerAdapter(s store.IStore, serializer serializer.IRPCSerializer) IRPCServerAdapter {
	return &statusServerAdapter{
		store:      s,
		serializer: serializer,
	}
}

type statusServerAdapter struct {
	store      store.IStore
	serializer serializer.IRPCSerializer
}

func (adapter *statusServerAdapter) Register(t transport.IServerTransport) {
	t.RegisterHandler("GET "+common.RouteHealth, adapter.handleHealth)
	t.RegisterHandler("GET "+common.RouteMetrics, adapter.handleMetrics)
}

func (adapter *statusServerAdapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	info, err := adapter.store.GetInfo()
	if err != nil {
		Logger.Errorf("health check failed: %v", err)
		writeBody(w, adapter.serializer, http.StatusServiceUnavailable, common.ErrorResponse{Message: "store unavailable"})
		return
	}
	writeBody(w, adapter.serializer, http.StatusOK, common.HealthResponse{Status: "ok", Store: info})
}

func (adapter *statusServerAdapter) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	metrics.WritePrometheus(w, true)
}

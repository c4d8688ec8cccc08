package document

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

var (
	documentsWritten = metrics.GetOrCreateCounter("dpaste_documents_written_total")
	keyCollisions    = metrics.GetOrCreateCounter("dpaste_key_collisions_total")
	documentSize     = metrics.GetOrCreateHistogram("dpaste_document_size_bytes")
	documentsLoaded  = metrics.GetOrCreateCounter("dpaste_documents_preloaded_total")
)

func countRead(mode Mode) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`dpaste_documents_read_total{mode=%q}`, mode)).Inc()
}

func countError(code ErrCode) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`dpaste_errors_total{code=%q}`, code)).Inc()
}

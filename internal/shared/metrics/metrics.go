package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	enhancementsTotal     atomic.Uint64
	resumesImportedTotal  atomic.Uint64
	analysesTotal         atomic.Uint64
	ordersIssuedTotal     atomic.Uint64
	paymentsVerifiedTotal atomic.Uint64
	paymentsRejectedTotal atomic.Uint64

	llmDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncEnhancement increments the text-enhancement counter.
func IncEnhancement() {
	enhancementsTotal.Add(1)
}

// IncResumeImported increments the resume-import counter.
func IncResumeImported() {
	resumesImportedTotal.Add(1)
}

// IncAnalysis increments the resume-analysis counter.
func IncAnalysis() {
	analysesTotal.Add(1)
}

// IncOrderIssued increments the payment-order counter.
func IncOrderIssued() {
	ordersIssuedTotal.Add(1)
}

// IncPaymentVerified increments the verified-payment counter.
func IncPaymentVerified() {
	paymentsVerifiedTotal.Add(1)
}

// IncPaymentRejected increments the rejected-payment counter.
func IncPaymentRejected() {
	paymentsRejectedTotal.Add(1)
}

// ObserveLLMDurationMs records an LLM round-trip in milliseconds.
func ObserveLLMDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "ai_enhancements_total", "Total text enhancements served", enhancementsTotal.Load())
	writeCounter(&buf, "ai_resumes_imported_total", "Total resumes imported via extraction", resumesImportedTotal.Load())
	writeCounter(&buf, "ai_analyses_total", "Total resume analyses served", analysesTotal.Load())
	writeCounter(&buf, "payment_orders_issued_total", "Total payment orders issued", ordersIssuedTotal.Load())
	writeCounter(&buf, "payments_verified_total", "Total payments verified", paymentsVerifiedTotal.Load())
	writeCounter(&buf, "payments_rejected_total", "Total payments rejected", paymentsRejectedTotal.Load())
	writeHistogram(&buf, "llm_duration_ms", "LLM round-trip duration in milliseconds", llmDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

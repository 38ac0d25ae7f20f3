package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	interpretRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intent_gateway_interpret_requests_total",
		Help: "Total number of interpret requests by outcome",
	}, []string{"outcome"}) // outcome: "success" or a fallback reason tag

	interpretDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "intent_gateway_interpret_duration_seconds",
		Help:    "End-to-end interpret request duration in seconds",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	})

	audioBytesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intent_gateway_audio_bytes_total",
		Help: "Total audio bytes accepted for processing",
	})

	// STT metrics
	sttRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intent_gateway_stt_requests_total",
		Help: "Total number of STT requests",
	}, []string{"status"})

	sttLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "intent_gateway_stt_latency_seconds",
		Help:    "STT processing latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	// LLM metrics
	llmRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intent_gateway_llm_requests_total",
		Help: "Total number of intent interpretation requests",
	}, []string{"status"})

	llmLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "intent_gateway_llm_latency_seconds",
		Help:    "Intent interpretation latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	// Temp storage metrics
	tempFilesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "intent_gateway_temp_files_active",
		Help: "Number of temp audio files currently on disk",
	})

	tempFilesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intent_gateway_temp_files_swept_total",
		Help: "Total stale temp files removed by the sweeper",
	})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "intent_gateway_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})

	circuitBreakerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intent_gateway_circuit_breaker_failures_total",
		Help: "Total circuit breaker failures",
	}, []string{"service"})
)

// RecordInterpretRequest records a completed interpret request and its outcome
func RecordInterpretRequest(outcome string, start time.Time) {
	interpretRequests.WithLabelValues(outcome).Inc()
	interpretDuration.Observe(time.Since(start).Seconds())
}

// RecordAudioBytes records audio bytes accepted for processing
func RecordAudioBytes(bytes int64) {
	audioBytesReceived.Add(float64(bytes))
}

// RecordSTTRequest records an STT call and its latency
func RecordSTTRequest(success bool, start time.Time) {
	sttLatency.Observe(time.Since(start).Seconds())
	status := "success"
	if !success {
		status = "error"
	}
	sttRequests.WithLabelValues(status).Inc()
}

// RecordLLMRequest records an interpretation call and its latency
func RecordLLMRequest(success bool, start time.Time) {
	llmLatency.Observe(time.Since(start).Seconds())
	status := "success"
	if !success {
		status = "error"
	}
	llmRequests.WithLabelValues(status).Inc()
}

// IncTempFiles adjusts the active temp file gauge
func IncTempFiles() { tempFilesActive.Inc() }

// DecTempFiles adjusts the active temp file gauge
func DecTempFiles() { tempFilesActive.Dec() }

// RecordTempFilesSwept records files removed by the sweeper
func RecordTempFilesSwept(n int) {
	tempFilesSwept.Add(float64(n))
}

// UpdateCircuitBreakerState updates circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// IncrementCircuitBreakerFailures increments circuit breaker failure counter
func IncrementCircuitBreakerFailures(service string) {
	circuitBreakerFailures.WithLabelValues(service).Inc()
}

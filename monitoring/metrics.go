package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

var (
	ObjectUploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_object_uploads_total",
			Help: "Total objects uploaded to the blob store",
		},
	)

	ObjectUploadedBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_object_uploaded_bytes_total",
			Help: "Total bytes uploaded to the blob store",
		},
	)

	ArchivesBuiltTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_archives_built_total",
			Help: "ZIP archives assembled from stored objects",
		},
		[]string{"status"},
	)

	ArchiveBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storage_archive_build_duration_seconds",
			Help:    "Duration of ZIP archive assembly",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ObjectUploadsTotal)
	prometheus.MustRegister(ObjectUploadedBytes)
	prometheus.MustRegister(ArchivesBuiltTotal)
	prometheus.MustRegister(ArchiveBuildDuration)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

package jenkins

import "github.com/prometheus/client_golang/prometheus"

var (
	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jenkins_jobs_requests",
		Help: "Number of Jenkins requests made by the jobs reporter.",
	}, []string{
		// http verb of the request
		"verb",
		// kind of resource requested
		"handler",
		// http status code of the request
		"code",
	})
	requestRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jenkins_jobs_request_retries",
		Help: "Number of Jenkins request retries made by the jobs reporter.",
	})
	requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jenkins_jobs_request_latency",
		Help:    "Time for a request to roundtrip between the jobs reporter and Jenkins.",
		Buckets: prometheus.DefBuckets,
	}, []string{
		// http verb of the request
		"verb",
		// kind of resource requested
		"handler",
	})
)

func init() {
	prometheus.MustRegister(requests)
	prometheus.MustRegister(requestRetries)
	prometheus.MustRegister(requestLatency)
}

// ClientMetrics is a set of metrics gathered by the Jenkins client.
type ClientMetrics struct {
	Requests       *prometheus.CounterVec
	RequestRetries prometheus.Counter
	RequestLatency *prometheus.HistogramVec
}

// NewClientMetrics returns the client metrics registered with the default
// prometheus registry.
func NewClientMetrics() *ClientMetrics {
	return &ClientMetrics{
		Requests:       requests,
		RequestRetries: requestRetries,
		RequestLatency: requestLatency,
	}
}

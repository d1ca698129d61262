package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	StationsLoaded prometheus.Gauge
	TripsLoaded    prometheus.Gauge

	TripsRejected  *prometheus.CounterVec // reason label: filtered_id|through_coach|empty|unanchored|unknown_station
	JourneyDefects *prometheus.CounterVec // kind label, see railway.DefectKind

	LoadDuration   prometheus.Histogram
	WindowDuration prometheus.Histogram

	Hits         *prometheus.CounterVec // outcome label: station|trip|miss|debounced
	HTTPRequests *prometheus.CounterVec // method, status labels
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railviz_stations_loaded",
			Help: "Number of stations in the loaded timetable.",
		}),
		TripsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railviz_trips_loaded",
			Help: "Number of trips with a reconstructed journey.",
		}),
		TripsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railviz_trips_rejected_total",
			Help: "Trips skipped at load time.",
		}, []string{"reason"}),
		JourneyDefects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railviz_journey_defects_total",
			Help: "Data quality defects found in reconstructed journeys.",
		}, []string{"kind"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "railviz_load_duration_seconds",
			Help:    "Duration of timetable loads including journey reconstruction.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		WindowDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "railviz_window_duration_seconds",
			Help:    "Duration of calendar window resolution.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railviz_hits_total",
			Help: "Pointer events by resolved outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railviz_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		c.StationsLoaded, c.TripsLoaded,
		c.TripsRejected, c.JourneyDefects,
		c.LoadDuration, c.WindowDuration,
		c.Hits, c.HTTPRequests,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

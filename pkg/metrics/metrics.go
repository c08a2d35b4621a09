// Copyright 2026 Mercredential Authors
//
// Package metrics exposes Prometheus collectors for the protocol package
// to update. It owns no HTTP server and no registry of
// its own — a caller that wants these scraped registers Collectors with
// their own prometheus.Registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups the counters and histograms this module updates.
// The zero value is not usable; construct with NewCollectors.
type Collectors struct {
	CredentialsIssued      prometheus.Counter
	CredentialsShown       prometheus.Counter
	PairingChecksPerformed prometheus.Counter
	VerifyDuration         prometheus.Histogram
}

// NewCollectors builds a fresh, unregistered set of collectors.
func NewCollectors() *Collectors {
	return &Collectors{
		CredentialsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mercredential",
			Name:      "credentials_issued_total",
			Help:      "Total number of credentials signed by issue().",
		}),
		CredentialsShown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mercredential",
			Name:      "credentials_shown_total",
			Help:      "Total number of credentials randomized via show().",
		}),
		PairingChecksPerformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mercredential",
			Name:      "pairing_checks_total",
			Help:      "Total number of PairingCheck accumulators verified.",
		}),
		VerifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mercredential",
			Name:      "verify_duration_seconds",
			Help:      "Wall-clock time of verify() calls, in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// MustRegister registers every collector with reg. Callers that do not
// want metrics scraped simply never call this.
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.CredentialsIssued, c.CredentialsShown, c.PairingChecksPerformed, c.VerifyDuration)
}

// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/prometheus/client_golang/prometheus"

var (
	opsExecuted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outcry_operations_total",
		Help: "Executed operations by result.",
	}, []string{"result"})

	receiptsDelivered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outcry_receipts_total",
		Help: "Delivered receipts by kind and result.",
	}, []string{"kind", "result"})
)

func init() {
	prometheus.MustRegister(opsExecuted, receiptsDelivered)
}

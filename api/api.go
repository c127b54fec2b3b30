// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/outcryio/outcry/api/accounts"
	"github.com/outcryio/outcry/api/auctions"
	"github.com/outcryio/outcry/api/debug"
	"github.com/outcryio/outcry/api/events"
	"github.com/outcryio/outcry/api/operations"
	"github.com/outcryio/outcry/api/transfers"
	"github.com/outcryio/outcry/logdb"
	"github.com/outcryio/outcry/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New returns the api router.
func New(rt *runtime.Runtime, logDB *logdb.LogDB, allowedOrigins string) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(rt).
		Mount(router, "/accounts")
	auctions.New(rt).
		Mount(router, "/auctions")
	operations.New(rt).
		Mount(router, "/operations")
	transfers.New(logDB).
		Mount(router, "/logs/transfers")
	events.New(logDB).
		Mount(router, "/logs/events")
	debug.New(rt).
		Mount(router, "/debug")
	router.Path("/metrics").Handler(promhttp.Handler())

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP
}

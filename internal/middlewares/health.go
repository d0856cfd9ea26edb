package middlewares

import (
	"net/http"

	"github.com/syrilster/ems-console/internal/util"
)

//RuntimeHealthCheck answers the load balancer probe
func RuntimeHealthCheck() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WithBodyAndStatus("All OK", http.StatusOK, w)
	}
}

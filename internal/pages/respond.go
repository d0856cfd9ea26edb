package pages

import (
	"net/http"

	"github.com/syrilster/ems-console/internal/util"
)

type StatusCoder interface {
	StatusCode() int
}

// Respond writes view as JSON with its status, or the error view when err is set
func Respond(w http.ResponseWriter, view StatusCoder, err error) {
	if err != nil {
		out, status := ErrorView(err)
		util.WithBodyAndStatus(out, status, w)
		return
	}
	util.WithBodyAndStatus(view, view.StatusCode(), w)
}

// BadRequest answers a request whose body or path could not be read
func BadRequest(w http.ResponseWriter, err error) {
	util.WithBodyAndStatus(Outcome{Message: failure(err.Error())}, http.StatusBadRequest, w)
}

package customhttp

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const HeaderRequestID = "X-Request-Id"

type middleware func(next httpCommandFunc) httpCommandFunc

func chainMiddleware(m ...middleware) middleware {
	return func(final httpCommandFunc) httpCommandFunc {
		last := final
		for i := len(m) - 1; i >= 0; i-- {
			last = m[i](last)
		}

		return func(req *http.Request) (resp *http.Response, err error) {
			return last(req)
		}
	}
}

func requestIDMiddleware() middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			if req.Header.Get(HeaderRequestID) == "" {
				req.Header.Set(HeaderRequestID, uuid.NewString())
			}
			return next(req)
		}
	}
}

func loggingMiddleware() middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			start := time.Now()
			contextLogger := log.WithContext(req.Context()).WithFields(log.Fields{
				"method":    req.Method,
				"url":       req.URL.String(),
				"requestId": req.Header.Get(HeaderRequestID),
			})

			resp, err = next(req)
			if err != nil {
				contextLogger.WithError(err).Error("request to ems backend failed")
				return resp, err
			}
			contextLogger.WithFields(log.Fields{
				"status":  resp.StatusCode,
				"latency": time.Since(start).String(),
			}).Debug("ems backend responded")
			return resp, nil
		}
	}
}

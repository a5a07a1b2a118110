package routing

import (
	"fmt"
	"net/http"

	"github.com/Christosun/flotech-report-system/responses"
	"go.uber.org/zap"
)

func RecoverWrapper(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zap.L().Error("panic recovered",
					zap.String("request_id", RequestIDFrom(r.Context())),
					zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprint(rec)),
					zap.Stack("stack"),
				)
				responses.WriteError(w, http.StatusInternalServerError, "internal server error", responses.CodeInternal)
			}
		}()
		inner.ServeHTTP(w, r)
	})
}

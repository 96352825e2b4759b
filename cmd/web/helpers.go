package main

import (
	"encoding/json"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
	"github.com/lifeline-dispatch/lifeline/internal/twiml"
	"log/slog"
	"net/http"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri, slog.Any("formdata", r.Form))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; all we can do is log.
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write JSON response", errors.SlogError(err))
	}
}

func (app *application) writeTwiML(w http.ResponseWriter, r *http.Request, response *twiml.Response) {
	out, err := response.Render()
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "render voice response"))
		return
	}
	w.Header().Set("Content-Type", twiml.ContentType)
	if _, err = w.Write(out); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write voice response", errors.SlogError(err))
	}
}

// mode names the active extraction path for the health endpoint.
func (app *application) mode() string {
	if app.extractor.Mock() {
		return "mock"
	}
	return "live"
}

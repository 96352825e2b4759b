package main

import (
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	// Dashboard API.
	mux.HandleFunc("GET /health", app.healthy)
	mux.HandleFunc("GET /incidents", app.listIncidents)
	mux.HandleFunc("POST /analyze", app.analyze)

	// Telephony webhooks.
	mux.HandleFunc("POST /voice", app.voiceEntry)
	mux.HandleFunc("POST /gather", app.gather)

	base := alice.New(app.recoverPanic, app.logRequest, commonHeaders)

	return base.Then(mux)
}

package main

import "net/http"

// listIncidents returns all stored incidents, newest first.
func (app *application) listIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := app.incidents.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, incidents)
}

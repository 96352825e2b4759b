package main

import "net/http"

// healthy reports liveness and which extraction mode is active.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, map[string]any{
		"ok":   true,
		"mode": app.mode(),
	})
}

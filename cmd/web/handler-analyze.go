package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

// analyze extracts and stores an incident from a directly submitted
// transcript, bypassing the call script.
func (app *application) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		// No incident without a transcript.
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	incident := app.extractor.Extract(r.Context(), transcript)
	incident, err := app.incidents.Insert(r.Context(), incident)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, incident)
}

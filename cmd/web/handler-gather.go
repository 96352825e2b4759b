package main

import (
	"github.com/lifeline-dispatch/lifeline/internal/callflow"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
	"github.com/lifeline-dispatch/lifeline/internal/logging"
	"github.com/lifeline-dispatch/lifeline/internal/twiml"
	"log/slog"
	"net/http"
)

// gather handles every continuation webhook of the call script. The provider
// posts the recognized speech here after each gather.
func (app *application) gather(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	callSID := r.PostFormValue("CallSid")
	if callSID == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	speech := r.PostFormValue("SpeechResult")

	ctx := logging.WithAttrs(r.Context(), slog.String("callSID", callSID))
	turn, err := app.script.Advance(ctx, callSID, speech)
	if err != nil {
		// The caller never hears a raw error; acknowledge and hang up while
		// the failure is logged server side.
		app.logger.LogAttrs(ctx, slog.LevelError, "call flow failed", errors.SlogError(err))
		app.writeTwiML(w, r, twiml.New().Say(callflow.ClosingAck).Hangup())
		return
	}

	response := twiml.New()
	switch {
	case turn.Done:
		response.Say(turn.Prompt).Hangup()
	case turn.Reset:
		// Start the script over from the entry webhook.
		response.Say(turn.Prompt).Redirect("/voice")
	default:
		// Loop silence back to this endpoint so the flow never dead-ends.
		response.GatherSpeech("/gather", turn.Prompt).Redirect("/gather")
	}
	app.writeTwiML(w, r, response)
}

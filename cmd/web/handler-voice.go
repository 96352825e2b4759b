package main

import (
	"github.com/lifeline-dispatch/lifeline/internal/callflow"
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"github.com/lifeline-dispatch/lifeline/internal/twiml"
	"net/http"
)

// voiceEntry handles the first webhook of a call: greet the caller and gather
// the first answer. On silence the provider loops back here.
func (app *application) voiceEntry(w http.ResponseWriter, r *http.Request) {
	response := twiml.New().
		GatherSpeech("/gather", callflow.Greeting, callflow.StepPrompt(models.StepLocation)).
		Redirect("/voice")
	app.writeTwiML(w, r, response)
}

package twiml_test

import (
	"github.com/lifeline-dispatch/lifeline/internal/twiml"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestGatherWithRedirect(t *testing.T) {
	out, err := twiml.New().
		GatherSpeech("/gather", "Hello.", "Where are you?").
		Redirect("/voice").
		Render()
	require.NoError(t, err)

	doc := string(out)
	require.Contains(t, doc, `<?xml version="1.0" encoding="UTF-8"?>`)
	require.Contains(t, doc, `<Gather input="speech" action="/gather" method="POST" timeout="7">`)
	require.Contains(t, doc, "<Say>Hello.</Say>")
	require.Contains(t, doc, "<Say>Where are you?</Say>")
	require.Contains(t, doc, `<Redirect method="POST">/voice</Redirect>`)
	require.True(t, len(doc) > 0 && doc[len(doc)-len("</Response>"):] == "</Response>")
}

func TestSayAndHangup(t *testing.T) {
	out, err := twiml.New().
		Say("Thank you. Goodbye.").
		Hangup().
		Render()
	require.NoError(t, err)

	doc := string(out)
	require.Contains(t, doc, "<Say>Thank you. Goodbye.</Say>")
	require.Contains(t, doc, "<Hangup></Hangup>")
}

func TestRenderEscapesSpeech(t *testing.T) {
	out, err := twiml.New().Say("Smith & Sons <warehouse>").Render()
	require.NoError(t, err)
	require.Contains(t, string(out), "Smith &amp; Sons &lt;warehouse&gt;")
}

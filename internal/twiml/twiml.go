// Package twiml renders the voice response markup the telephony provider
// expects from webhook replies: what to say, whether to gather more speech,
// and whether to hang up.
package twiml

import (
	"bytes"
	"encoding/xml"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
)

// ContentType is the media type for rendered voice response documents.
const ContentType = "text/xml"

// gatherTimeoutSeconds is how long the provider waits for speech before
// posting an empty result back.
const gatherTimeoutSeconds = 7

type say struct {
	XMLName xml.Name `xml:"Say"`
	Text    string   `xml:",chardata"`
}

type gather struct {
	XMLName xml.Name `xml:"Gather"`
	Input   string   `xml:"input,attr"`
	Action  string   `xml:"action,attr"`
	Method  string   `xml:"method,attr"`
	Timeout int      `xml:"timeout,attr"`
	Says    []say    `xml:"Say"`
}

type redirect struct {
	XMLName xml.Name `xml:"Redirect"`
	Method  string   `xml:"method,attr"`
	URL     string   `xml:",chardata"`
}

type hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// Response accumulates verbs in order and renders them as one document.
type Response struct {
	verbs []any
}

func New() *Response {
	return &Response{}
}

// Say speaks the given text to the caller.
func (r *Response) Say(text string) *Response {
	r.verbs = append(r.verbs, say{Text: text})
	return r
}

// GatherSpeech speaks the prompts and collects a speech fragment, which the
// provider posts to action.
func (r *Response) GatherSpeech(action string, prompts ...string) *Response {
	g := gather{
		Input:   "speech",
		Action:  action,
		Method:  "POST",
		Timeout: gatherTimeoutSeconds,
	}
	for _, prompt := range prompts {
		g.Says = append(g.Says, say{Text: prompt})
	}
	r.verbs = append(r.verbs, g)
	return r
}

// Redirect tells the provider to re-post to action, used to loop on silence.
func (r *Response) Redirect(action string) *Response {
	r.verbs = append(r.verbs, redirect{Method: "POST", URL: action})
	return r
}

// Hangup terminates the call.
func (r *Response) Hangup() *Response {
	r.verbs = append(r.verbs, hangup{})
	return r
}

// Render serialises the response document.
func (r *Response) Render() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	encoder := xml.NewEncoder(&buf)
	root := xml.StartElement{Name: xml.Name{Local: "Response"}}
	if err := encoder.EncodeToken(root); err != nil {
		return nil, errors.Wrap(err, "encode response start")
	}
	for _, verb := range r.verbs {
		if err := encoder.Encode(verb); err != nil {
			return nil, errors.Wrap(err, "encode verb")
		}
	}
	if err := encoder.EncodeToken(root.End()); err != nil {
		return nil, errors.Wrap(err, "encode response end")
	}
	if err := encoder.Flush(); err != nil {
		return nil, errors.Wrap(err, "flush encoder")
	}
	return buf.Bytes(), nil
}

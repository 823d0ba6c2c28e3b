package pagestream

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/docview/pagestream/core/logger"
	"github.com/docview/pagestream/core/sse"
)

// Stream event name prefixes. The rendering mode is appended, so a vector
// stream emits "pageavailable.svg", "finished.svg", "failed.svg".
const (
	streamEventPageAvailable = "pageavailable"
	streamEventFinished      = "finished"
	streamEventFailed        = "failed"
)

// fallbackErrorMessage stands in when a failure event carries no usable text.
const fallbackErrorMessage = "unspecified error"

// route registers the handlers for this plugin's rendering mode plus the
// generic transport error handler. Registration happens before Connect so no
// delivered event can slip past.
func (p *Plugin) route(client *sse.Client) {
	client.On(p.modeEvent(streamEventPageAvailable), p.handlePageAvailable)
	client.On(p.modeEvent(streamEventFinished), p.handleFinished)
	client.On(p.modeEvent(streamEventFailed), p.handleFailure)
	client.On(sse.ErrorEventName, p.handleFailure)
}

func (p *Plugin) modeEvent(base string) string {
	return fmt.Sprintf("%s.%s", base, p.mode)
}

// handlePageAvailable decodes {"pages":[...]} and forwards one notification
// per page, preserving the order of the decoded array. A malformed payload is
// logged and dropped; only failure events end the stream.
func (p *Plugin) handlePageAvailable(ev sse.Event) {
	var payload struct {
		Pages []int `json:"pages"`
	}
	if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
		p.logger.Warn("dropping malformed page event",
			logger.Component("pagestream"),
			logger.Event(ev.Name),
			logger.Error(err),
		)
		return
	}

	for _, page := range payload.Pages {
		p.gate.Emit(NotificationPageAvailable, PagePayload{Page: page})
		p.logger.Debug("page available",
			logger.Component("pagestream"),
			logger.Page(page),
		)
	}
}

// handleFinished processes the conversion-complete event: the remaining pages
// are announced through the gate, then the completion signal fires directly
// on the host API, then the subscription closes. That order is fixed.
func (p *Plugin) handleFinished(ev sse.Event) {
	if !p.claimTerminal() {
		return
	}

	p.gate.Emit(NotificationPageAvailable, UpToPayload{UpTo: p.viewer.NumPages})
	p.viewer.API.Fire(EventRealtimeComplete, nil)
	p.shutdown()

	p.logger.Info("conversion finished",
		logger.Component("pagestream"),
		logger.Count("num_pages", p.viewer.NumPages),
		logger.Elapsed(p.started),
	)
}

// handleFailure processes both "failed.<mode>" and generic transport "error"
// events: it fires realtimeerror directly on the host API and closes the
// subscription. One failure ends the plugin's active life; there is no retry.
func (p *Plugin) handleFailure(ev sse.Event) {
	if !p.claimTerminal() {
		return
	}

	msg := errorMessage(ev.Data)
	p.viewer.API.Fire(EventRealtimeError, ErrorPayload{Error: msg})
	p.shutdown()

	p.logger.Warn("conversion stream failed",
		logger.Component("pagestream"),
		logger.Event(ev.Name),
		slog.String("message", msg),
	)
}

// errorMessage extracts a failure message from an event payload: a JSON
// {"error": "..."} field when the payload decodes, the raw text when it does
// not, and a fixed fallback when neither yields anything.
func errorMessage(data string) string {
	var payload struct {
		Error string `json:"error"`
	}

	msg := data
	if err := json.Unmarshal([]byte(data), &payload); err == nil {
		msg = payload.Error
	}
	if msg == "" {
		msg = fallbackErrorMessage
	}
	return msg
}

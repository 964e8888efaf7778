package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/pion/webrtc/v4"
)

type SignalKind string

const (
	SignalOffer     SignalKind = "offer"
	SignalAnswer    SignalKind = "answer"
	SignalCandidate SignalKind = "candidate"
	SignalOther     SignalKind = "other"
)

// ClassifySignal inspects a peer-to-peer signal for logging. The payload is relayed
// untouched whatever the result; an error only means it did not look like WebRTC.
func ClassifySignal(raw json.RawMessage) (SignalKind, error) {
	var probe struct {
		Type      string          `json:"type"`
		SDP       string          `json:"sdp"`
		Candidate json.RawMessage `json:"candidate"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return SignalOther, fmt.Errorf("signal: %w", err)
	}

	switch {
	case probe.SDP != "":
		desc := webrtc.SessionDescription{Type: webrtc.NewSDPType(probe.Type), SDP: probe.SDP}
		if _, err := desc.Unmarshal(); err != nil {
			return SignalOther, fmt.Errorf("signal sdp: %w", err)
		}
		switch desc.Type {
		case webrtc.SDPTypeOffer:
			return SignalOffer, nil
		case webrtc.SDPTypeAnswer, webrtc.SDPTypePranswer:
			return SignalAnswer, nil
		default:
			return SignalOther, nil
		}
	case len(probe.Candidate) > 0:
		// Flat form: {"candidate": "candidate:...", "sdpMid": ...}
		if probe.Candidate[0] == '"' {
			return SignalCandidate, nil
		}
		var cand webrtc.ICECandidateInit
		if err := json.Unmarshal(probe.Candidate, &cand); err != nil {
			return SignalOther, fmt.Errorf("signal candidate: %w", err)
		}
		return SignalCandidate, nil
	}
	return SignalOther, nil
}

// ICEServers converts configured URLs into the structure WebRTC clients expect.
func ICEServers(urls []string) []webrtc.ICEServer {
	if len(urls) == 0 {
		return []webrtc.ICEServer{}
	}
	return []webrtc.ICEServer{{URLs: urls}}
}

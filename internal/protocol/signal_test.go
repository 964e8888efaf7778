package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSDP = "v=0\r\no=- 0 0 IN IP4 127.0.0.1\r\ns=-\r\nt=0 0\r\n"

func TestClassifySignal(t *testing.T) {
	sdp, err := json.Marshal(testSDP)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		want SignalKind
	}{
		{"offer", `{"type":"offer","sdp":` + string(sdp) + `}`, SignalOffer},
		{"answer", `{"type":"answer","sdp":` + string(sdp) + `}`, SignalAnswer},
		{"flat candidate", `{"candidate":"candidate:1 1 udp 2122260223 10.0.0.1 54321 typ host","sdpMid":"0"}`, SignalCandidate},
		{"nested candidate", `{"type":"candidate","candidate":{"candidate":"candidate:1 1 udp 1 10.0.0.1 1 typ host","sdpMLineIndex":0}}`, SignalCandidate},
		{"renegotiate", `{"renegotiate":true}`, SignalOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifySignal(json.RawMessage(tt.raw))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySignal_Opaque(t *testing.T) {
	req := require.New(t)

	_, err := ClassifySignal(json.RawMessage(`"just a string"`))
	req.Error(err)

	kind, err := ClassifySignal(json.RawMessage(`{"type":"offer","sdp":"garbage"}`))
	req.Error(err)
	req.Equal(SignalOther, kind)
}

func TestICEServers(t *testing.T) {
	req := require.New(t)
	req.Empty(ICEServers(nil))

	servers := ICEServers([]string{"stun:stun.example.org:3478"})
	req.Len(servers, 1)
	req.Equal([]string{"stun:stun.example.org:3478"}, servers[0].URLs)
}

package models

import "encoding/json"

// WSMessage is the envelope for all WebSocket communication.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message types exchanged over the websocket.
const (
	TypeStart    = "start"
	TypeNext     = "next"
	TypePrev     = "prev"
	TypeReset    = "reset"
	TypeDescribe = "describe"

	TypeSession     = "session"
	TypeStep        = "step"
	TypeIdle        = "idle"
	TypeDescription = "description"
	TypeError       = "error"
)

// StartRequest is sent by the client to begin a new simulation run.
type StartRequest struct {
	Message string `json:"message"`
}

// DescribeRequest asks for the annotation of a layer or a header field.
type DescribeRequest struct {
	Kind string `json:"kind"` // "layer" or "field"
	Key  string `json:"key"`
}

// Description answers a DescribeRequest. Found is false when no annotation exists.
type Description struct {
	Kind  string `json:"kind"`
	Key   string `json:"key"`
	Text  string `json:"text,omitempty"`
	Found bool   `json:"found"`
}

// SessionInfo is sent once after the websocket is established.
type SessionInfo struct {
	ID     string      `json:"id"`
	Layers []LayerInfo `json:"layers"`
}

// LayerInfo names one layer of the pipeline.
type LayerInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorPayload describes an error sent to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

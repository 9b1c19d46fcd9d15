package engine

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stackviz/internal/inspect"
	"stackviz/internal/metadata"
	"stackviz/internal/models"
	"stackviz/internal/observability"
	"stackviz/internal/pipeline"
	"stackviz/internal/simulation"
)

// ErrUnknownClient is returned for commands from a client that is not registered.
var ErrUnknownClient = errors.New("client not registered")

// Client represents a connected WebSocket client that receives step frames.
type Client interface {
	SendMessage(msg models.WSMessage) error
}

type session struct {
	id    string
	state simulation.State
}

// Engine keeps one simulation run per connected client.
type Engine struct {
	mu       sync.Mutex
	sessions map[Client]*session
	registry *metadata.Registry
	logger   zerolog.Logger
}

// New creates a new Engine.
func New(logger zerolog.Logger, registry *metadata.Registry) *Engine {
	return &Engine{
		sessions: make(map[Client]*session),
		registry: registry,
		logger:   logger.With().Str("component", "engine").Logger(),
	}
}

// RegisterClient adds a client with an idle session and sends it the
// session id and layer list.
func (e *Engine) RegisterClient(c Client) string {
	id := uuid.NewString()
	e.mu.Lock()
	e.sessions[c] = &session{id: id}
	e.mu.Unlock()

	e.logger.Debug().Str("session", id).Msg("client registered")
	e.send(c, models.TypeSession, models.SessionInfo{ID: id, Layers: LayerInfo()})
	return id
}

// UnregisterClient removes a client and drops its run.
func (e *Engine) UnregisterClient(c Client) {
	e.mu.Lock()
	s, ok := e.sessions[c]
	delete(e.sessions, c)
	e.mu.Unlock()
	if ok {
		e.logger.Debug().Str("session", s.id).Msg("client unregistered")
	}
}

// State returns the client's current simulation state.
func (e *Engine) State(c Client) (simulation.State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[c]
	if !ok {
		return simulation.State{}, false
	}
	return s.state, true
}

// Start replaces the client's run with a new one for message. An empty
// message leaves the session as it was.
func (e *Engine) Start(c Client, message string) error {
	return e.transition(c, models.TypeStart, func(simulation.State) (simulation.State, error) {
		return simulation.Start(message)
	})
}

// Next advances the client's run by one layer.
func (e *Engine) Next(c Client) error {
	return e.transition(c, models.TypeNext, simulation.State.Advance)
}

// Prev moves the client's run back one layer.
func (e *Engine) Prev(c Client) error {
	return e.transition(c, models.TypePrev, simulation.State.Retreat)
}

// Reset returns the client's session to idle.
func (e *Engine) Reset(c Client) error {
	return e.transition(c, models.TypeReset, func(simulation.State) (simulation.State, error) {
		return simulation.State{}, nil
	})
}

func (e *Engine) transition(c Client, command string, fn func(simulation.State) (simulation.State, error)) error {
	e.mu.Lock()
	s, ok := e.sessions[c]
	if !ok {
		e.mu.Unlock()
		return ErrUnknownClient
	}
	prev := s.state
	next, err := fn(prev)
	if err == nil {
		s.state = next
	}
	id := s.id
	e.mu.Unlock()

	log := e.logger.With().Str("session", id).Str("command", command).Logger()
	if err != nil {
		observability.RecordTransition(command, "rejected")
		log.Debug().Err(err).Msg("transition rejected")
		return err
	}

	result := "ok"
	if command != models.TypeStart && command != models.TypeReset &&
		next.Step == prev.Step && next.Running() == prev.Running() {
		result = "noop"
	}
	observability.RecordTransition(command, result)
	log.Debug().Int("step", next.Step).Str("result", result).Msg("transition")

	if !next.Running() {
		e.send(c, models.TypeIdle, nil)
		return nil
	}
	e.send(c, models.TypeStep, e.Frame(next))
	return nil
}

// Frame renders a running state for the client. The physical step also
// carries a dump of the exported wire frame.
func (e *Engine) Frame(s simulation.State) models.StepFrame {
	layer := s.Layer()
	frame := models.StepFrame{
		Step:        s.Step,
		Total:       s.Total(),
		Layer:       layer.Name,
		Description: layer.Description,
		Output:      s.Output,
		CanPrev:     s.CanRetreat(),
		CanNext:     s.CanAdvance(),
	}
	if s.Step == pipeline.StepPhysical {
		info, err := inspect.Message(s.Message)
		if err != nil {
			e.logger.Warn().Err(err).Msg("wire frame unavailable")
		} else {
			frame.WireDump = info.HexDump
		}
	}
	return frame
}

// Simulate runs message through every layer and returns one frame per step.
func (e *Engine) Simulate(message string) ([]models.StepFrame, error) {
	s, err := simulation.Start(message)
	if err != nil {
		observability.RecordTransition(models.TypeStart, "rejected")
		return nil, err
	}
	observability.RecordTransition(models.TypeStart, "ok")
	frames := []models.StepFrame{e.Frame(s)}
	for s.CanAdvance() {
		if s, err = s.Advance(); err != nil {
			return nil, err
		}
		frames = append(frames, e.Frame(s))
	}
	return frames, nil
}

// Describe looks up the annotation for a layer or field.
func (e *Engine) Describe(req models.DescribeRequest) models.Description {
	d := models.Description{Kind: req.Kind, Key: req.Key}
	switch req.Kind {
	case "layer":
		d.Text, d.Found = e.registry.DescribeLayer(req.Key)
	case "field":
		d.Text, d.Found = e.registry.DescribeField(req.Key)
	}
	return d
}

// LayerInfo lists the pipeline layers in order.
func LayerInfo() []models.LayerInfo {
	var out []models.LayerInfo
	for i, l := range pipeline.Layers() {
		out = append(out, models.LayerInfo{
			Index:       i,
			Name:        l.Name,
			Description: l.Description,
		})
	}
	return out
}

func (e *Engine) send(c Client, msgType string, v any) {
	msg := models.WSMessage{Type: msgType}
	if v != nil {
		payload, err := json.Marshal(v)
		if err != nil {
			e.logger.Error().Err(err).Str("type", msgType).Msg("encode message")
			return
		}
		msg.Payload = payload
	}
	if err := c.SendMessage(msg); err != nil {
		e.logger.Debug().Err(err).Str("type", msgType).Msg("send failed")
	}
}

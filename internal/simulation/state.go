// Package simulation steps a message through the layer pipeline.
//
// A State is a value: Start, Advance and Retreat return a new State and
// leave the receiver untouched, so callers own the current run explicitly.
// The zero State is idle.
package simulation

import (
	"errors"
	"fmt"
	"strings"

	"stackviz/internal/models"
	"stackviz/internal/packet"
	"stackviz/internal/pipeline"
)

// ErrEmptyMessage blocks a run from starting without input.
var ErrEmptyMessage = errors.New("please enter a message")

// State is one point of a simulation run.
type State struct {
	Step    int
	Message string
	Packet  *packet.Packet
	Output  models.RenderedOutput

	running bool
}

// Start begins a run for message. Surrounding whitespace is trimmed; an
// empty message returns ErrEmptyMessage.
func Start(message string) (State, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return State{}, ErrEmptyMessage
	}
	return replay(message, 0)
}

// Running reports whether a run is active.
func (s State) Running() bool { return s.running }

// Total is the number of steps in a run.
func (s State) Total() int { return pipeline.Count() }

// CanAdvance reports whether Advance would move forward.
func (s State) CanAdvance() bool { return s.running && s.Step < s.Total()-1 }

// CanRetreat reports whether Retreat would move back.
func (s State) CanRetreat() bool { return s.running && s.Step > 0 }

// Layer returns the layer definition of the current step.
func (s State) Layer() pipeline.Layer {
	l, _ := pipeline.At(s.Step)
	return l
}

// Advance runs the next layer against a copy of the current packet. At the
// last step, or when idle, it returns s unchanged.
func (s State) Advance() (State, error) {
	if !s.CanAdvance() {
		return s, nil
	}
	next := State{Step: s.Step + 1, Message: s.Message, Packet: s.Packet.Clone(), running: true}
	out, err := pipeline.Step(next.Step, next.Packet, next.Message)
	if err != nil {
		return s, fmt.Errorf("advance to step %d: %w", next.Step, err)
	}
	next.Output = out
	return next, nil
}

// Retreat moves back one step, rebuilding the packet from scratch. At step 0,
// or when idle, it returns s unchanged.
func (s State) Retreat() (State, error) {
	if !s.CanRetreat() {
		return s, nil
	}
	prev, err := replay(s.Message, s.Step-1)
	if err != nil {
		return s, fmt.Errorf("retreat to step %d: %w", s.Step-1, err)
	}
	return prev, nil
}

func replay(message string, step int) (State, error) {
	pkt, out, err := pipeline.Run(message, step)
	if err != nil {
		return State{}, err
	}
	return State{Step: step, Message: message, Packet: pkt, Output: out, running: true}, nil
}

// Package packet holds the simulated packet that the layer pipeline builds up
// one header section at a time.
package packet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSectionExists is returned when a section name is inserted twice.
	ErrSectionExists = errors.New("packet section already present")
	// ErrUnsupportedValue is returned for section values other than a string or Header.
	ErrUnsupportedValue = errors.New("unsupported section value")
)

// Field is one named value of a header record. Values are ints or strings.
type Field struct {
	Name  string
	Value any
}

// Header is an ordered header record.
type Header []Field

// Get returns the value of the named field.
func (h Header) Get(name string) (any, bool) {
	for _, f := range h {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the header as an object with fields in declaration order.
func (h Header) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeValue(&buf, f.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Section is one top-level entry of a Packet: the payload string or a Header.
type Section struct {
	Name  string
	Value any
}

// Packet is the accumulated simulated packet. Sections keep insertion order
// and are never replaced or removed.
type Packet struct {
	sections []Section
}

// New returns an empty packet.
func New() *Packet {
	return &Packet{}
}

// Insert appends a new section.
func (p *Packet) Insert(name string, value any) error {
	switch v := value.(type) {
	case string:
	case Header:
		value = append(Header(nil), v...)
	default:
		return fmt.Errorf("section %s: %w: %T", name, ErrUnsupportedValue, value)
	}
	if _, ok := p.Section(name); ok {
		return fmt.Errorf("section %s: %w", name, ErrSectionExists)
	}
	p.sections = append(p.sections, Section{Name: name, Value: value})
	return nil
}

// Section returns the value stored under name.
func (p *Packet) Section(name string) (any, bool) {
	for _, s := range p.sections {
		if s.Name == name {
			return s.Value, true
		}
	}
	return nil, false
}

// Header returns the header stored under name, if that section is a header.
func (p *Packet) Header(name string) (Header, bool) {
	v, ok := p.Section(name)
	if !ok {
		return nil, false
	}
	h, ok := v.(Header)
	return h, ok
}

// Names lists section names in insertion order.
func (p *Packet) Names() []string {
	names := make([]string, len(p.sections))
	for i, s := range p.sections {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of sections.
func (p *Packet) Len() int { return len(p.sections) }

// Clone returns an independent copy.
func (p *Packet) Clone() *Packet {
	if p == nil {
		return New()
	}
	out := &Packet{sections: make([]Section, len(p.sections))}
	for i, s := range p.sections {
		if h, ok := s.Value.(Header); ok {
			s.Value = append(Header(nil), h...)
		}
		out.sections[i] = s
	}
	return out
}

// MarshalJSON encodes the packet canonically, see Encode.
func (p *Packet) MarshalJSON() ([]byte, error) {
	return p.Encode()
}

// Encode renders the packet as compact JSON with sections and fields in
// insertion order and HTML characters left unescaped. The output matches what
// a browser's JSON.stringify produces for the same object.
func (p *Packet) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p.sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(&buf, s.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeValue(&buf, s.Value); err != nil {
			return nil, fmt.Errorf("section %s: %w", s.Name, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Hex returns the lowercase hex encoding of Encode.
func (p *Packet) Hex() (string, error) {
	data, err := p.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	if h, ok := v.(Header); ok {
		data, err := h.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

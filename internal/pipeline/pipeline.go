// Package pipeline defines the five simulated network layers and the
// transforms that build up a packet as a message moves down the stack.
package pipeline

import (
	"errors"
	"fmt"

	"stackviz/internal/models"
	"stackviz/internal/packet"
)

// ErrStepOutOfRange is returned when a step index names no layer.
var ErrStepOutOfRange = errors.New("step out of range")

// Step indexes in stack order.
const (
	StepApplication = iota
	StepTransport
	StepNetwork
	StepDataLink
	StepPhysical
)

// Context is the input of a Transform. Packet holds the sections written by
// earlier stages; the transform inserts its own section into it.
type Context struct {
	Packet  *packet.Packet
	Message string
}

// Transform computes one layer's header and its rendering.
type Transform func(ctx Context) (models.RenderedOutput, error)

// Layer is one fixed stage of the pipeline.
type Layer struct {
	Name        string
	Description string
	Transform   Transform
}

var stack = []Layer{
	{
		Name:        "Application",
		Description: "Creates the payload from your message.",
		Transform:   applicationStage,
	},
	{
		Name:        "Transport",
		Description: "Adds a simulated TCP header with detailed fields.",
		Transform:   transportStage,
	},
	{
		Name:        "Network",
		Description: "Adds a simulated IPv4 header with detailed fields.",
		Transform:   networkStage,
	},
	{
		Name:        "Data Link",
		Description: "Adds a simulated Ethernet frame header with detailed fields.",
		Transform:   dataLinkStage,
	},
	{
		Name:        "Physical",
		Description: "Encodes the complete packet into a physical signal representation.",
		Transform:   physicalStage,
	},
}

// Layers returns the layer definitions in stack order.
func Layers() []Layer {
	return append([]Layer(nil), stack...)
}

// Count is the number of layers.
func Count() int { return len(stack) }

// At returns the layer at index i.
func At(i int) (Layer, error) {
	if i < 0 || i >= len(stack) {
		return Layer{}, fmt.Errorf("layer %d: %w", i, ErrStepOutOfRange)
	}
	return stack[i], nil
}

// Step runs layer i against pkt.
func Step(i int, pkt *packet.Packet, message string) (models.RenderedOutput, error) {
	layer, err := At(i)
	if err != nil {
		return models.RenderedOutput{}, err
	}
	out, err := layer.Transform(Context{Packet: pkt, Message: message})
	if err != nil {
		return models.RenderedOutput{}, fmt.Errorf("%s layer: %w", layer.Name, err)
	}
	return out, nil
}

// Run executes layers 0..upTo on a fresh packet and returns the packet and
// the rendering of the last layer run.
func Run(message string, upTo int) (*packet.Packet, models.RenderedOutput, error) {
	if upTo < 0 || upTo >= len(stack) {
		return nil, models.RenderedOutput{}, fmt.Errorf("run to %d: %w", upTo, ErrStepOutOfRange)
	}
	pkt := packet.New()
	var out models.RenderedOutput
	for i := 0; i <= upTo; i++ {
		var err error
		if out, err = Step(i, pkt, message); err != nil {
			return nil, models.RenderedOutput{}, err
		}
	}
	return pkt, out, nil
}

func entry(key, label string, value any) models.Entry {
	return models.Entry{Label: label, Value: fmt.Sprint(value), MetadataKey: key}
}

func applicationStage(ctx Context) (models.RenderedOutput, error) {
	if err := ctx.Packet.Insert(SectionPayload, ctx.Message); err != nil {
		return models.RenderedOutput{}, err
	}
	return models.RenderedOutput{
		Title: "Application Layer",
		Entries: []models.Entry{
			entry("payload", "Payload", `"`+ctx.Message+`"`),
		},
	}, nil
}

func transportStage(ctx Context) (models.RenderedOutput, error) {
	checksum := TransportChecksum(ctx.Message, SeqNumber)
	header := packet.Header{
		{Name: "srcPort", Value: SrcPort},
		{Name: "destPort", Value: DstPort},
		{Name: "seq", Value: SeqNumber},
		{Name: "ack", Value: AckNumber},
		{Name: "dataOffset", Value: DataOffset},
		{Name: "flags", Value: TCPFlags},
		{Name: "windowSize", Value: WindowSize},
		{Name: "checksum", Value: checksum},
		{Name: "urgentPointer", Value: UrgentPointer},
		{Name: "options", Value: TCPOptions},
	}
	if err := ctx.Packet.Insert(SectionTransport, header); err != nil {
		return models.RenderedOutput{}, err
	}
	return models.RenderedOutput{
		Title: "Transport Layer",
		Entries: []models.Entry{
			entry("srcPort", "Source Port", SrcPort),
			entry("destPort", "Destination Port", DstPort),
			entry("sequenceNumber", "Sequence Number", SeqNumber),
			entry("ackNumber", "Acknowledgment Number", AckNumber),
			entry("dataOffset", "Data Offset", fmt.Sprintf("%d (%d bytes)", DataOffset, DataOffset*4)),
			entry("flags", "Flags", TCPFlags),
			entry("windowSize", "Window Size", WindowSize),
			entry("transportChecksum", "Checksum", fmt.Sprintf("%d (mod 256)", checksum)),
			entry("urgentPointer", "Urgent Pointer", UrgentPointer),
			entry("options", "Options", TCPOptions),
		},
	}, nil
}

func networkStage(ctx Context) (models.RenderedOutput, error) {
	protocol := int(IPProtocol)
	totalLength := TotalLength(ctx.Message)
	checksum := NetworkChecksum(IPVersion, IHL, TOS, totalLength, Identification, TTL, protocol)
	header := packet.Header{
		{Name: "version", Value: IPVersion},
		{Name: "ihl", Value: IHL},
		{Name: "tos", Value: TOS},
		{Name: "totalLength", Value: totalLength},
		{Name: "identification", Value: Identification},
		{Name: "flags", Value: IPFlags},
		{Name: "fragmentOffset", Value: FragmentOffset},
		{Name: "ttl", Value: TTL},
		{Name: "protocol", Value: protocol},
		{Name: "checksum", Value: checksum},
		{Name: "sourceIP", Value: SourceIP},
		{Name: "destinationIP", Value: DestinationIP},
	}
	if err := ctx.Packet.Insert(SectionNetwork, header); err != nil {
		return models.RenderedOutput{}, err
	}
	return models.RenderedOutput{
		Title: "Network Layer",
		Entries: []models.Entry{
			entry("version", "Version", IPVersion),
			entry("ihl", "IHL", fmt.Sprintf("%d (words)", IHL)),
			entry("tos", "TOS", TOS),
			entry("totalLength", "Total Length", fmt.Sprintf("%d bytes", totalLength)),
			entry("identification", "Identification", Identification),
			entry("ipFlags", "Flags", IPFlags),
			entry("fragmentOffset", "Fragment Offset", FragmentOffset),
			entry("ttl", "TTL", TTL),
			entry("protocol", "Protocol", fmt.Sprintf("%d (%s)", protocol, IPProtocol)),
			entry("ipChecksum", "Header Checksum", fmt.Sprintf("%d (mod 256)", checksum)),
			entry("sourceIP", "Source IP", SourceIP),
			entry("destinationIP", "Destination IP", DestinationIP),
		},
	}, nil
}

func dataLinkStage(ctx Context) (models.RenderedOutput, error) {
	destMAC := ResolveHardwareAddr(DestinationIP)
	header := packet.Header{
		{Name: "preamble", Value: Preamble},
		{Name: "sfd", Value: SFD},
		{Name: "destMAC", Value: destMAC},
		{Name: "srcMAC", Value: SourceMAC},
		{Name: "etherType", Value: EtherType},
		{Name: "payloadSize", Value: PayloadRange},
		{Name: "fcs", Value: FCS},
	}
	if err := ctx.Packet.Insert(SectionDataLink, header); err != nil {
		return models.RenderedOutput{}, err
	}
	return models.RenderedOutput{
		Title: "Link Layer",
		Entries: []models.Entry{
			entry("preamble", "Preamble", Preamble),
			entry("sfd", "SFD", SFD),
			entry("destMAC", "Destination MAC", destMAC),
			entry("srcMAC", "Source MAC", SourceMAC),
			entry("etherType", "EtherType/Length", EtherType),
			entry("payloadEthernet", "Payload", PayloadRange),
			entry("fcs", "FCS", FCS),
		},
	}, nil
}

func physicalStage(ctx Context) (models.RenderedOutput, error) {
	signal, err := ctx.Packet.Hex()
	if err != nil {
		return models.RenderedOutput{}, fmt.Errorf("encode signal: %w", err)
	}
	return models.RenderedOutput{
		Title: "Physical Layer",
		Entries: []models.Entry{
			{Label: "Encoded Signal (Hex)", Value: signal},
			{Label: "Signal", Value: SignalNote},
		},
	}, nil
}

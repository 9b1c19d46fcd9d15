// Package export turns a simulated packet into bytes a packet tool can open.
//
// Header values are copied from the simulation as-is, including the
// demonstration checksums. Only the length fields are fixed up so the frame
// decodes cleanly.
package export

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"stackviz/internal/packet"
	"stackviz/internal/pipeline"
	"stackviz/internal/simulation"
)

// MaxPayload is the largest payload that fits the 16-bit IPv4 total length
// alongside 20-byte IPv4 and TCP headers.
const MaxPayload = 65535 - 40

// ErrPayloadTooLarge is returned when the message does not fit one frame.
var ErrPayloadTooLarge = errors.New("payload too large for one frame")

// Frame serializes the simulated headers for message as an Ethernet frame.
func Frame(message string) ([]byte, error) {
	s, err := simulation.Start(message)
	if err != nil {
		return nil, err
	}
	for s.Step < pipeline.StepDataLink {
		if s, err = s.Advance(); err != nil {
			return nil, err
		}
	}
	return Serialize(s.Packet)
}

// Serialize builds the frame from a packet that has passed the data link layer.
func Serialize(pkt *packet.Packet) ([]byte, error) {
	v, _ := pkt.Section(pipeline.SectionPayload)
	payload, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("serialize: missing %s section", pipeline.SectionPayload)
	}
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("serialize: %d bytes: %w", len(payload), ErrPayloadTooLarge)
	}
	eth, err := ethernetLayer(pkt)
	if err != nil {
		return nil, err
	}
	ip, err := ipv4Layer(pkt)
	if err != nil {
		return nil, err
	}
	tcp, err := tcpLayer(pkt)
	if err != nil {
		return nil, err
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("serialize frame: %w", err)
	}
	return buf.Bytes(), nil
}

func ethernetLayer(pkt *packet.Packet) (*layers.Ethernet, error) {
	h, err := header(pkt, pipeline.SectionDataLink)
	if err != nil {
		return nil, err
	}
	src, err := macField(h, "srcMAC")
	if err != nil {
		return nil, err
	}
	dst, err := macField(h, "destMAC")
	if err != nil {
		return nil, err
	}
	return &layers.Ethernet{
		SrcMAC:       src,
		DstMAC:       dst,
		EthernetType: layers.EthernetTypeIPv4,
	}, nil
}

func ipv4Layer(pkt *packet.Packet) (*layers.IPv4, error) {
	h, err := header(pkt, pipeline.SectionNetwork)
	if err != nil {
		return nil, err
	}
	f := fields{h: h}
	ip := &layers.IPv4{
		Version:    uint8(f.intVal("version")),
		IHL:        uint8(f.intVal("ihl")),
		TOS:        uint8(f.intVal("tos")),
		Id:         uint16(f.intVal("identification")),
		Flags:      ipv4Flags(f.strVal("flags")),
		FragOffset: uint16(f.intVal("fragmentOffset")),
		TTL:        uint8(f.intVal("ttl")),
		Protocol:   layers.IPProtocol(f.intVal("protocol")),
		Checksum:   uint16(f.intVal("checksum")),
		SrcIP:      net.ParseIP(f.strVal("sourceIP")).To4(),
		DstIP:      net.ParseIP(f.strVal("destinationIP")).To4(),
	}
	if f.err != nil {
		return nil, f.err
	}
	if ip.SrcIP == nil || ip.DstIP == nil {
		return nil, fmt.Errorf("%s: invalid IPv4 address", pipeline.SectionNetwork)
	}
	return ip, nil
}

func tcpLayer(pkt *packet.Packet) (*layers.TCP, error) {
	h, err := header(pkt, pipeline.SectionTransport)
	if err != nil {
		return nil, err
	}
	f := fields{h: h}
	tcp := &layers.TCP{
		SrcPort:    layers.TCPPort(f.intVal("srcPort")),
		DstPort:    layers.TCPPort(f.intVal("destPort")),
		Seq:        uint32(f.intVal("seq")),
		Ack:        uint32(f.intVal("ack")),
		DataOffset: uint8(f.intVal("dataOffset")),
		Window:     uint16(f.intVal("windowSize")),
		Checksum:   uint16(f.intVal("checksum")),
		Urgent:     uint16(f.intVal("urgentPointer")),
	}
	setTCPFlags(tcp, f.strVal("flags"))
	if f.err != nil {
		return nil, f.err
	}
	return tcp, nil
}

func header(pkt *packet.Packet, name string) (packet.Header, error) {
	h, ok := pkt.Header(name)
	if !ok {
		return nil, fmt.Errorf("serialize: missing %s section", name)
	}
	return h, nil
}

// fields reads typed values from a header and keeps the first error.
type fields struct {
	h   packet.Header
	err error
}

func (f *fields) intVal(name string) int {
	v, ok := f.h.Get(name)
	n, isInt := v.(int)
	if (!ok || !isInt) && f.err == nil {
		f.err = fmt.Errorf("header field %s: want int, got %T", name, v)
	}
	return n
}

func (f *fields) strVal(name string) string {
	v, ok := f.h.Get(name)
	s, isStr := v.(string)
	if (!ok || !isStr) && f.err == nil {
		f.err = fmt.Errorf("header field %s: want string, got %T", name, v)
	}
	return s
}

func macField(h packet.Header, name string) (net.HardwareAddr, error) {
	f := fields{h: h}
	raw := f.strVal(name)
	if f.err != nil {
		return nil, f.err
	}
	mac, err := net.ParseMAC(raw)
	if err != nil {
		return nil, fmt.Errorf("header field %s: %w", name, err)
	}
	return mac, nil
}

func flagTokens(label string) []string {
	return strings.FieldsFunc(strings.ToUpper(label), func(r rune) bool {
		return r < 'A' || r > 'Z'
	})
}

func ipv4Flags(label string) layers.IPv4Flag {
	var flags layers.IPv4Flag
	for _, tok := range flagTokens(label) {
		switch tok {
		case "DF":
			flags |= layers.IPv4DontFragment
		case "MF":
			flags |= layers.IPv4MoreFragments
		}
	}
	return flags
}

func setTCPFlags(tcp *layers.TCP, label string) {
	for _, tok := range flagTokens(label) {
		switch tok {
		case "SYN":
			tcp.SYN = true
		case "ACK":
			tcp.ACK = true
		case "FIN":
			tcp.FIN = true
		case "RST":
			tcp.RST = true
		case "PSH":
			tcp.PSH = true
		case "URG":
			tcp.URG = true
		}
	}
}

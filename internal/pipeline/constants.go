package pipeline

import (
	"fmt"

	"github.com/google/gopacket/layers"
)

// Section names under which each stage stores its output in the packet.
const (
	SectionPayload   = "data"
	SectionTransport = "Transport_Layer_header"
	SectionNetwork   = "Network_Layer_header"
	SectionDataLink  = "Data_Link_Layer_header"
)

// Transport demonstration values.
const (
	SrcPort       = 5000
	DstPort       = 80
	SeqNumber     = 1
	AckNumber     = 0
	DataOffset    = 5
	TCPFlags      = "SYN"
	WindowSize    = 5840
	UrgentPointer = 0
	TCPOptions    = "None"
)

// Network demonstration values.
const (
	IPVersion      = 4
	IHL            = 5
	TOS            = 0
	IPHeaderLen    = 20
	Identification = 54321
	FragmentOffset = 0
	TTL            = 64
	SourceIP       = "192.168.1.2"
	DestinationIP  = "93.184.216.34"
)

// Data link demonstration values.
const (
	Preamble     = "7 bytes (AA AA AA AA AA AA AA)"
	SFD          = "1 byte (AB)"
	SourceMAC    = "00:1B:44:11:3A:B7"
	ResolvedMAC  = "00:1B:44:11:3A:B8"
	PayloadRange = "46-1500 bytes"
	FCS          = "4 bytes (CRC)"
)

// SignalNote is the static note shown on the physical step.
const SignalNote = "Simulates conversion into electrical/optical signals."

var (
	// IPProtocol is the protocol number carried in the network header.
	IPProtocol = layers.IPProtocolTCP
	// IPFlags is the fragmentation flag label of the network header.
	IPFlags = layers.IPv4DontFragment.String()
	// EtherType is the protocol type label of the frame header.
	EtherType = fmt.Sprintf("0x%04X (%s)", uint16(layers.EthernetTypeIPv4), layers.EthernetTypeIPv4)
)

// Package inspect decodes an exported frame with gopacket and lists what a
// packet analyzer would show for it.
package inspect

import (
	"fmt"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"stackviz/internal/export"
	"stackviz/internal/models"
)

// Message builds the frame for message and decodes it.
func Message(message string) (models.FrameInfo, error) {
	frame, err := export.Frame(message)
	if err != nil {
		return models.FrameInfo{}, err
	}
	return Decode(frame)
}

// Decode parses an Ethernet frame into layer listings and a hex dump.
func Decode(frame []byte) (models.FrameInfo, error) {
	pkt := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Default)
	if fail := pkt.ErrorLayer(); fail != nil {
		return models.FrameInfo{}, fmt.Errorf("decode frame: %w", fail.Error())
	}
	return models.FrameInfo{
		Length:  len(frame),
		Layers:  extractLayers(pkt),
		HexDump: formatHexDump(frame),
		RawHex:  formatRawHex(frame),
	}, nil
}

func extractLayers(pkt gopacket.Packet) []models.LayerDetail {
	var result []models.LayerDetail
	for _, layer := range pkt.Layers() {
		if detail, ok := parseLayer(layer); ok {
			result = append(result, detail)
		}
	}
	return result
}

func parseLayer(layer gopacket.Layer) (models.LayerDetail, bool) {
	switch l := layer.(type) {
	case *layers.Ethernet:
		return parseEthernet(l), true
	case *layers.IPv4:
		return parseIPv4(l), true
	case *layers.TCP:
		return parseTCP(l), true
	default:
		if layer.LayerType() == gopacket.LayerTypePayload {
			data := layer.LayerContents()
			if isHTTP(data) {
				return parseHTTP(data), true
			}
			return parsePayload(data), true
		}
		return models.LayerDetail{}, false
	}
}

func parseEthernet(eth *layers.Ethernet) models.LayerDetail {
	return models.LayerDetail{
		Name: "Ethernet II",
		Fields: []models.LayerField{
			{Name: "Source", Value: eth.SrcMAC.String()},
			{Name: "Destination", Value: eth.DstMAC.String()},
			{Name: "Type", Value: fmt.Sprintf("%s (0x%04x)", eth.EthernetType, uint16(eth.EthernetType))},
		},
	}
}

func parseIPv4(ip *layers.IPv4) models.LayerDetail {
	return models.LayerDetail{
		Name: "IPv4",
		Fields: []models.LayerField{
			{Name: "Version", Value: fmt.Sprintf("%d", ip.Version)},
			{Name: "Header Length", Value: fmt.Sprintf("%d bytes", ip.IHL*4)},
			{Name: "Type of Service", Value: fmt.Sprintf("0x%02x", ip.TOS)},
			{Name: "Total Length", Value: fmt.Sprintf("%d", ip.Length)},
			{Name: "Identification", Value: fmt.Sprintf("0x%04x (%d)", ip.Id, ip.Id)},
			{Name: "Flags", Value: ip.Flags.String()},
			{Name: "Fragment Offset", Value: fmt.Sprintf("%d", ip.FragOffset)},
			{Name: "TTL", Value: fmt.Sprintf("%d", ip.TTL)},
			{Name: "Protocol", Value: ip.Protocol.String()},
			{Name: "Checksum", Value: fmt.Sprintf("0x%04x (%d)", ip.Checksum, ip.Checksum)},
			{Name: "Source", Value: ip.SrcIP.String()},
			{Name: "Destination", Value: ip.DstIP.String()},
		},
	}
}

func parseTCP(tcp *layers.TCP) models.LayerDetail {
	return models.LayerDetail{
		Name: "TCP",
		Fields: []models.LayerField{
			{Name: "Source Port", Value: fmt.Sprintf("%d", tcp.SrcPort)},
			{Name: "Destination Port", Value: fmt.Sprintf("%d", tcp.DstPort)},
			{Name: "Sequence Number", Value: fmt.Sprintf("%d", tcp.Seq)},
			{Name: "Acknowledgment Number", Value: fmt.Sprintf("%d", tcp.Ack)},
			{Name: "Data Offset", Value: fmt.Sprintf("%d bytes", tcp.DataOffset*4)},
			{Name: "Flags", Value: fmt.Sprintf("[%s]", strings.Join(tcpFlags(tcp), ", "))},
			{Name: "Window Size", Value: fmt.Sprintf("%d", tcp.Window)},
			{Name: "Checksum", Value: fmt.Sprintf("0x%04x (%d)", tcp.Checksum, tcp.Checksum)},
			{Name: "Urgent Pointer", Value: fmt.Sprintf("%d", tcp.Urgent)},
		},
	}
}

func tcpFlags(tcp *layers.TCP) []string {
	flagParts := []string{}
	if tcp.SYN {
		flagParts = append(flagParts, "SYN")
	}
	if tcp.ACK {
		flagParts = append(flagParts, "ACK")
	}
	if tcp.FIN {
		flagParts = append(flagParts, "FIN")
	}
	if tcp.RST {
		flagParts = append(flagParts, "RST")
	}
	if tcp.PSH {
		flagParts = append(flagParts, "PSH")
	}
	if tcp.URG {
		flagParts = append(flagParts, "URG")
	}
	return flagParts
}

func parsePayload(data []byte) models.LayerDetail {
	return models.LayerDetail{
		Name: "Data",
		Fields: []models.LayerField{
			{Name: "Length", Value: fmt.Sprintf("%d bytes", len(data))},
			{Name: "Text", Value: string(data)},
		},
	}
}

func isHTTP(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	s := string(data[:4])
	return s == "GET " || s == "POST" || s == "PUT " || s == "DELE" ||
		s == "HEAD" || s == "HTTP" || s == "PATC" || s == "OPTI"
}

func parseHTTP(data []byte) models.LayerDetail {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.SplitN(text, "\n", 32)

	fields := []models.LayerField{
		{Name: "Request/Status Line", Value: lines[0]},
	}
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		parts := strings.SplitN(line, ": ", 2)
		if len(parts) == 2 {
			fields = append(fields, models.LayerField{Name: parts[0], Value: parts[1]})
		}
	}

	return models.LayerDetail{Name: "HTTP", Fields: fields}
}

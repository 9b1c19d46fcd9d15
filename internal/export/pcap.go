package export

import (
	"fmt"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

const (
	DefaultSnapLen = 65535
)

// Epoch is the capture timestamp of every exported frame, so exports of the
// same message are byte-identical.
var Epoch = time.Unix(0, 0).UTC()

// WritePcap writes a one-packet pcap file holding the frame for message.
func WritePcap(w io.Writer, message string) error {
	frame, err := Frame(message)
	if err != nil {
		return err
	}
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(DefaultSnapLen, layers.LinkTypeEthernet); err != nil {
		return fmt.Errorf("write pcap header: %w", err)
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     Epoch,
		CaptureLength: len(frame),
		Length:        len(frame),
	}
	if err := pw.WritePacket(ci, frame); err != nil {
		return fmt.Errorf("write pcap packet: %w", err)
	}
	return nil
}

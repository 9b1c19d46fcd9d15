package pipeline

import (
	"encoding/hex"
	"errors"
	"testing"

	"stackviz/internal/metadata"
	"stackviz/internal/packet"
)

func TestLayerOrder(t *testing.T) {
	want := []string{"Application", "Transport", "Network", "Data Link", "Physical"}
	got := Layers()
	if len(got) != len(want) || Count() != len(want) {
		t.Fatalf("unexpected layer count: %d", len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("layer %d: expected %q, got %q", i, name, got[i].Name)
		}
		if got[i].Description == "" {
			t.Fatalf("layer %d has no description", i)
		}
	}
}

func TestLayersReturnsCopy(t *testing.T) {
	ls := Layers()
	ls[0].Name = "Mutated"
	if l, _ := At(0); l.Name != "Application" {
		t.Fatalf("layer table mutated through copy")
	}
}

func TestTransportChecksum(t *testing.T) {
	tests := []struct {
		message string
		want    int
	}{
		{"", 1},
		{"A", 66},
		{"Hi", 178},
		{"é", (1 + 0xe9) % 256},
		{"😀", (1 + 0xd83d + 0xde00) % 256},
	}
	for _, tt := range tests {
		if got := TransportChecksum(tt.message, SeqNumber); got != tt.want {
			t.Fatalf("checksum(%q): expected %d, got %d", tt.message, tt.want, got)
		}
	}
}

func TestNetworkTotalLengthAndChecksum(t *testing.T) {
	for _, msg := range []string{"A", "hello world", "😀"} {
		pkt, _, err := Run(msg, 2)
		if err != nil {
			t.Fatalf("run %q: %v", msg, err)
		}
		h, ok := pkt.Header(SectionNetwork)
		if !ok {
			t.Fatalf("missing network header")
		}
		total, _ := h.Get("totalLength")
		if total != 20+MessageLength(msg) {
			t.Fatalf("totalLength for %q: %v", msg, total)
		}
		sum, _ := h.Get("checksum")
		want := (4 + 5 + 0 + total.(int) + 54321 + 64 + 6) % 256
		if sum != want {
			t.Fatalf("checksum for %q: expected %d, got %v", msg, want, sum)
		}
	}
	if MessageLength("😀") != 2 {
		t.Fatalf("expected surrogate pair to count as 2")
	}
}

func TestEntryCountsAndKeys(t *testing.T) {
	counts := []int{1, 10, 12, 7, 2}
	titles := []string{"Application Layer", "Transport Layer", "Network Layer", "Link Layer", "Physical Layer"}
	reg := metadata.Default()

	pkt := packet.New()
	for i := range counts {
		out, err := Step(i, pkt, "Hello")
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if out.Title != titles[i] {
			t.Fatalf("step %d: title %q", i, out.Title)
		}
		if len(out.Entries) != counts[i] {
			t.Fatalf("step %d: expected %d entries, got %d", i, counts[i], len(out.Entries))
		}
		for _, e := range out.Entries {
			if i == 4 {
				if e.MetadataKey != "" {
					t.Fatalf("physical entry %q should be untagged", e.Label)
				}
				continue
			}
			if e.MetadataKey == "" {
				t.Fatalf("step %d entry %q is untagged", i, e.Label)
			}
			if _, ok := reg.DescribeField(e.MetadataKey); !ok {
				t.Fatalf("dangling metadata key %q", e.MetadataKey)
			}
		}
		if _, ok := reg.DescribeLayer(stack[i].Name); !ok {
			t.Fatalf("no annotation for layer %q", stack[i].Name)
		}
	}
}

func TestApplicationPayload(t *testing.T) {
	pkt, out, err := Run("Hi", 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v, _ := pkt.Section(SectionPayload); v != "Hi" {
		t.Fatalf("unexpected payload %v", v)
	}
	if out.Entries[0].Value != `"Hi"` || out.Entries[0].MetadataKey != "payload" {
		t.Fatalf("unexpected entry %+v", out.Entries[0])
	}
}

func TestDataLinkUsesResolvedAddress(t *testing.T) {
	if ResolveHardwareAddr("10.0.0.1") != "00:1B:44:11:3A:B8" {
		t.Fatalf("resolver must return the fixed demonstration address")
	}
	_, out, err := Run("x", 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Entries[2].Value != "00:1B:44:11:3A:B8" {
		t.Fatalf("unexpected destination MAC %q", out.Entries[2].Value)
	}
	if out.Entries[4].Value != "0x0800 (IPv4)" {
		t.Fatalf("unexpected ether type %q", out.Entries[4].Value)
	}
}

func TestPhysicalSignalMatchesBrowserEncoding(t *testing.T) {
	want := `{"data":"Hi",` +
		`"Transport_Layer_header":{"srcPort":5000,"destPort":80,"seq":1,"ack":0,"dataOffset":5,"flags":"SYN","windowSize":5840,"checksum":178,"urgentPointer":0,"options":"None"},` +
		`"Network_Layer_header":{"version":4,"ihl":5,"tos":0,"totalLength":22,"identification":54321,"flags":"DF","fragmentOffset":0,"ttl":64,"protocol":6,"checksum":150,"sourceIP":"192.168.1.2","destinationIP":"93.184.216.34"},` +
		`"Data_Link_Layer_header":{"preamble":"7 bytes (AA AA AA AA AA AA AA)","sfd":"1 byte (AB)","destMAC":"00:1B:44:11:3A:B8","srcMAC":"00:1B:44:11:3A:B7","etherType":"0x0800 (IPv4)","payloadSize":"46-1500 bytes","fcs":"4 bytes (CRC)"}}`

	_, out, err := Run("Hi", 4)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	decoded, err := hex.DecodeString(out.Entries[0].Value)
	if err != nil {
		t.Fatalf("signal is not hex: %v", err)
	}
	if string(decoded) != want {
		t.Fatalf("signal mismatch\n got: %s\nwant: %s", decoded, want)
	}
	if out.Entries[1].Value != SignalNote {
		t.Fatalf("unexpected note %q", out.Entries[1].Value)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	for step := 0; step < Count(); step++ {
		_, a, err := Run("determinism", step)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		_, b, _ := Run("determinism", step)
		if len(a.Entries) != len(b.Entries) {
			t.Fatalf("step %d differs", step)
		}
		for i := range a.Entries {
			if a.Entries[i] != b.Entries[i] {
				t.Fatalf("step %d entry %d differs: %+v vs %+v", step, i, a.Entries[i], b.Entries[i])
			}
		}
	}
}

func TestRunOutOfRange(t *testing.T) {
	for _, step := range []int{-1, 5} {
		if _, _, err := Run("x", step); !errors.Is(err, ErrStepOutOfRange) {
			t.Fatalf("step %d: expected ErrStepOutOfRange, got %v", step, err)
		}
	}
}

func TestStageRefusesToOverwriteSection(t *testing.T) {
	pkt := packet.New()
	if _, err := Step(0, pkt, "a"); err != nil {
		t.Fatalf("step: %v", err)
	}
	if _, err := Step(0, pkt, "b"); !errors.Is(err, packet.ErrSectionExists) {
		t.Fatalf("expected ErrSectionExists, got %v", err)
	}
}

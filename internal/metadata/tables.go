package metadata

var layerText = map[string]string{
	"Application": `Application Layer
Purpose & Functions:
- Enables user interaction and defines communication rules.
- Protocols like HTTP, FTP, and DNS manage data exchange.

HTTP Header Fields:
• Host: Specifies the server.
• User-Agent: Identifies the client.
• Content-Type: Defines the data format.`,

	"Transport": `Transport Layer
Purpose & Functions:
- Handles end-to-end communication.
- Provides reliability (TCP) or speed (UDP).

TCP Header Fields:
• Source Port: Identifies the sending application.
• Destination Port: Identifies the receiving application.
• Sequence Number: Ensures correct order.
• Acknowledgment Number: Confirms receipt.
• Flags: Controls connection (SYN, ACK, FIN).
• Window Size: Manages flow control.`,

	"Network": `Internet Layer (Network Layer)
Purpose & Functions:
- Manages logical addressing and routing via IP addresses.
- Handles packet fragmentation and reassembly.

IPv4 Header Fields:
• Version: IPv4 = 4.
• IHL: Header length (usually 20 bytes).
• TOS: Quality of Service.
• Total Length: Packet size (max 65535 bytes).
• Identification: Unique fragment ID.
• Flags: DF/MF control fragmentation.
• Fragment Offset: Position of fragment.
• TTL: Limits packet lifespan.
• Protocol: e.g., TCP (6), UDP (17).
• Header Checksum: Validates header integrity.
• Source/Destination IP: Sender and receiver addresses.`,

	"Data Link": `Link Layer (Network Interface Layer)
Purpose & Functions:
- Handles physical data transmission and error detection.
- Uses MAC addresses instead of IP addresses.

Ethernet Frame Header Fields:
• Preamble: 7 bytes to synchronize.
• SFD: 1 byte signaling frame start.
• Destination MAC: Target device (e.g., 00:1A:2B:3C:4D:5E).
• Source MAC: Sender's device.
• EtherType/Length: Protocol type (e.g., 0x0800 for IPv4).
• Payload: 46-1500 bytes of data.
• FCS: 4 bytes CRC for error detection.`,

	"Physical": `Physical Layer
Purpose & Functions:
- Converts packet data into electrical, optical, or radio signals.
- Involves modulation, encoding, and transmission techniques.`,
}

var fieldText = map[string]string{
	"payload": `Payload: The actual user data.
Size: Varies with input.
Metadata: May be encoded as UTF-8, JSON, etc.`,

	// transport
	"srcPort": `Source Port (2 bytes): Identifies the sending application.
Range: Typically 1024-65535.`,
	"destPort": `Destination Port (2 bytes): Identifies the receiving application (e.g., 80 for HTTP).`,
	"sequenceNumber": `Sequence Number (4 bytes): Orders TCP stream data.
Derived from: Byte count of transmitted data.`,
	"ackNumber": `Acknowledgment Number (4 bytes): Confirms receipt of data.`,
	"dataOffset": `Data Offset (4 bits): Indicates header length in 32-bit words.
Minimum: 5 (20 bytes).`,
	"flags":      `Flags (6 bits): Controls connection behavior (SYN, ACK, FIN, etc.).`,
	"windowSize": `Window Size (2 bytes): Controls data flow to prevent congestion.
Metadata: Adjusts based on network conditions.`,
	"transportChecksum": `Checksum (2 bytes): Validates header and data integrity (mod 256 demo).`,
	"urgentPointer":     `Urgent Pointer (2 bytes): Points to urgent data (usually 0).`,
	"options": `Options: Optional fields (e.g., SACK).
Metadata: Variable length.`,

	// network
	"version": `Version (4 bits): IP version, 4 for IPv4.`,
	"ihl": `Header Length (IHL) (4 bits): IP header length in 32-bit words.
Minimum: 5 (20 bytes).`,
	"tos":            `Type of Service (1 byte): Defines QoS and traffic prioritization.`,
	"totalLength":    `Total Length (2 bytes): Size of the entire IP packet (header + data).`,
	"identification": `Identification (2 bytes): Unique ID for packet fragmentation/reassembly.`,
	"ipFlags":        `Flags (3 bits): Controls fragmentation (DF/MF).`,
	"fragmentOffset": `Fragment Offset (13 bits): Position of fragment within original packet.`,
	"ttl":            `TTL (1 byte): Time To Live; decrements each hop.`,
	"protocol":       `Protocol (1 byte): Indicates next-layer protocol (e.g., TCP=6).`,
	"ipChecksum":     `Header Checksum (2 bytes): Verifies IP header integrity (mod 256 demo).`,
	"ipOptions":      `Options: Optional IP header fields (security, timestamps).`,
	"sourceIP":       `Source IP (4 bytes): Logical address of the sending host.`,
	"destinationIP":  `Destination IP (4 bytes): Logical address of the receiving host.`,

	// data link
	"preamble":        `Preamble (7 bytes): 10101010 bits for synchronization.`,
	"sfd":             `Start Frame Delimiter (1 byte): Signals frame start.`,
	"etherType":       `EtherType/Length (2 bytes): Indicates payload protocol (e.g., 0x0800 for IPv4).`,
	"payloadEthernet": `Payload: Contains data (46-1500 bytes).`,
	"fcs":             `Frame Check Sequence (4 bytes): CRC for error detection.`,
	"srcMAC": `Source MAC: Unique 48-bit hardware address of the sender.
Format: e.g., 00:1B:44:11:3A:B7.`,
	"destMAC": `Destination MAC: Target device's MAC address (via ARP).`,
}

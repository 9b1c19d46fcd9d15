package pipeline

import "unicode/utf16"

// The checksums below are teaching aids, not the real TCP/IP algorithms.
// Lengths and character codes count UTF-16 code units, as a browser does.

// MessageLength returns the length of message in UTF-16 code units.
func MessageLength(message string) int {
	return len(utf16.Encode([]rune(message)))
}

// TransportChecksum is (seq + sum of character codes) mod 256.
func TransportChecksum(message string, seq int) int {
	sum := seq
	for _, c := range utf16.Encode([]rune(message)) {
		sum += int(c)
	}
	return sum % 256
}

// TotalLength is the simulated IPv4 total length for message.
func TotalLength(message string) int {
	return IPHeaderLen + MessageLength(message)
}

// NetworkChecksum sums version, ihl, tos, total length, identification, ttl
// and protocol, mod 256. Flags, fragment offset and addresses are left out.
func NetworkChecksum(version, ihl, tos, totalLength, identification, ttl, protocol int) int {
	return (version + ihl + tos + totalLength + identification + ttl + protocol) % 256
}

// ResolveHardwareAddr stands in for ARP. It always answers with the same
// demonstration address.
func ResolveHardwareAddr(ip string) string {
	_ = ip
	return ResolvedMAC
}

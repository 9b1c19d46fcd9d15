package inspect

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const dumpWidth = 16

// formatHexDump renders offset, hex and printable-ASCII columns, 16 bytes a
// row with an extra gap after the eighth byte.
func formatHexDump(data []byte) string {
	var sb strings.Builder
	for offset := 0; offset < len(data); offset += dumpWidth {
		row := data[offset:min(offset+dumpWidth, len(data))]
		fmt.Fprintf(&sb, "%04x  ", offset)
		for i := 0; i < dumpWidth; i++ {
			if i < len(row) {
				fmt.Fprintf(&sb, "%02x ", row[i])
			} else {
				sb.WriteString("   ")
			}
			if i == dumpWidth/2-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(" |")
		for _, b := range row {
			sb.WriteByte(printable(b))
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

func printable(b byte) byte {
	if b >= 0x20 && b <= 0x7e {
		return b
	}
	return '.'
}

func formatRawHex(data []byte) string {
	return hex.EncodeToString(data)
}

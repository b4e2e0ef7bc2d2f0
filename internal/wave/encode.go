package wave

import (
	"fmt"

	"github.com/skdltmxn/vcd-go/internal/scan"
)

const hexDigits = "0123456789abcdef"

// BinToHex packs a vector payload of binary digits into lowercase hex,
// most significant nibble first. The input is left-padded with zeros to a
// multiple of four bits; an empty payload encodes as "0".
//
// Any x bit makes the whole vector "x"; otherwise any z bit makes it "z".
// Upper-case X and Z are accepted.
func BinToHex(bits string) (string, error) {
	var hasX, hasZ bool
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0', '1':
		case 'x', 'X':
			hasX = true
		case 'z', 'Z':
			hasZ = true
		default:
			return "", fmt.Errorf("%w: invalid vector digit %q", scan.ErrSyntax, bits[i])
		}
	}
	switch {
	case hasX:
		return "x", nil
	case hasZ:
		return "z", nil
	case len(bits) == 0:
		return "0", nil
	}

	pad := (4 - len(bits)%4) % 4
	out := make([]byte, (len(bits)+pad)/4)

	value := 0
	for i := 0; i < len(bits)+pad; i++ {
		value <<= 1
		if i >= pad && bits[i-pad] == '1' {
			value |= 1
		}
		if i%4 == 3 {
			out[i/4] = hexDigits[value]
			value = 0
		}
	}
	return string(out), nil
}

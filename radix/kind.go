package radix

// Kind identifies the numeral system a number's limbs are written in.
type Kind uint8

const (
	KindCustomBase6 Kind = 0x1 // KindCustomBase6 is the custom radix with base 2^63 - 2.
	KindPowerOfTwo  Kind = 0x2 // KindPowerOfTwo is the machine word radix with base 2^64.
)

func (k Kind) String() string {
	switch k {
	case KindCustomBase6:
		return "CustomBase6"
	case KindPowerOfTwo:
		return "PowerOfTwo"
	default:
		return "Unknown"
	}
}

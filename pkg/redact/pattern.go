package redact

// Pattern is a single named redaction pattern. Apply scans the input and
// returns the masked output along with the number of matches. A Pattern must
// be safe for concurrent use and must never mutate its input.
type Pattern interface {
	// Name returns the configuration name of the pattern (e.g. "credit_card").
	Name() string

	// Apply masks every occurrence of the pattern and returns the match count.
	Apply(input []byte) ([]byte, int)
}

// Built-in pattern names, in fixed application order.
const (
	PatternCreditCard = "credit_card"
	PatternSSN        = "ssn"
	PatternEmail      = "email"
	PatternPhoneUS    = "phone_us"
)

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isWordByte reports whether b terminates a word boundary check. Bytes in
// the UTF-8 continuation range count as word bytes so the scanners never
// split a multibyte rune.
func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' ||
		b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= 0x80
}

// creditCardPattern matches DDDD-DDDD-DDDD-DDDD or 16 consecutive digits and
// keeps the last four digits in the mask.
type creditCardPattern struct{}

func (creditCardPattern) Name() string { return PatternCreditCard }

func (creditCardPattern) Apply(input []byte) ([]byte, int) {
	out := make([]byte, 0, len(input))
	count := 0

	for i := 0; i < len(input); {
		// Dashed form: DDDD-DDDD-DDDD-DDDD (19 bytes).
		if i+19 <= len(input) && isDashedCard(input[i:i+19]) {
			out = append(out, "XXXX-XXXX-XXXX-"...)
			out = append(out, input[i+15:i+19]...)
			i += 19
			count++
			continue
		}

		// Bare form: 16 consecutive digits, not embedded in a longer run.
		if i+16 <= len(input) && allDigits(input[i:i+16]) {
			beforeOK := i == 0 || !isDigit(input[i-1])
			afterOK := i+16 >= len(input) || !isDigit(input[i+16])
			if beforeOK && afterOK {
				out = append(out, "XXXXXXXXXXXX"...)
				out = append(out, input[i+12:i+16]...)
				i += 16
				count++
				continue
			}
		}

		out = append(out, input[i])
		i++
	}

	return out, count
}

// isDashedCard reports whether s is exactly DDDD-DDDD-DDDD-DDDD.
func isDashedCard(s []byte) bool {
	if len(s) != 19 {
		return false
	}
	for idx, b := range s {
		switch idx {
		case 4, 9, 14:
			if b != '-' {
				return false
			}
		default:
			if !isDigit(b) {
				return false
			}
		}
	}
	return true
}

func allDigits(s []byte) bool {
	for _, b := range s {
		if !isDigit(b) {
			return false
		}
	}
	return true
}

// ssnPattern matches DDD-DD-DDDD at word boundaries and masks all digits.
type ssnPattern struct{}

func (ssnPattern) Name() string { return PatternSSN }

func (ssnPattern) Apply(input []byte) ([]byte, int) {
	out := make([]byte, 0, len(input))
	count := 0

	for i := 0; i < len(input); {
		if i+11 <= len(input) && isSSN(input[i:i+11]) {
			beforeOK := i == 0 || !isWordByte(input[i-1])
			afterOK := i+11 >= len(input) || !isWordByte(input[i+11])
			if beforeOK && afterOK {
				out = append(out, "XXX-XX-XXXX"...)
				i += 11
				count++
				continue
			}
		}

		out = append(out, input[i])
		i++
	}

	return out, count
}

// isSSN reports whether s is exactly DDD-DD-DDDD.
func isSSN(s []byte) bool {
	if len(s) != 11 {
		return false
	}
	for idx, b := range s {
		switch idx {
		case 3, 6:
			if b != '-' {
				return false
			}
		default:
			if !isDigit(b) {
				return false
			}
		}
	}
	return true
}

// emailPattern matches local@domain tokens where the domain contains an
// interior dot, and replaces the whole token with a fixed placeholder.
type emailPattern struct{}

func (emailPattern) Name() string { return PatternEmail }

func (emailPattern) Apply(input []byte) ([]byte, int) {
	out := make([]byte, 0, len(input))
	count := 0
	lastEnd := 0

	for i := 0; i < len(input); {
		if input[i] == '@' {
			start := emailStart(input, i)
			// Never walk back into a span consumed by a previous match; the
			// bytes there no longer mirror the output.
			if start < lastEnd {
				start = lastEnd
			}
			end := emailEnd(input, i)
			if start < i && end > i+1 && validEmailDomain(input[i+1:end]) {
				// The local part is already in the output; drop it before
				// writing the placeholder.
				out = out[:len(out)-(i-start)]
				out = append(out, "[EMAIL REDACTED]"...)
				i = end
				lastEnd = end
				count++
				continue
			}
		}

		out = append(out, input[i])
		i++
	}

	return out, count
}

// emailStart walks backwards from the @ over local-part bytes.
func emailStart(input []byte, atPos int) int {
	start := atPos
	for j := atPos - 1; j >= 0; j-- {
		b := input[j]
		if isWordByte(b) || b == '.' || b == '_' || b == '%' || b == '+' || b == '-' {
			start = j
		} else {
			break
		}
	}
	return start
}

// emailEnd walks forwards from the @ over domain bytes.
func emailEnd(input []byte, atPos int) int {
	end := atPos + 1
	for j := atPos + 1; j < len(input); j++ {
		b := input[j]
		if isWordByte(b) || b == '.' || b == '-' {
			end = j + 1
		} else {
			break
		}
	}
	return end
}

// validEmailDomain requires an interior dot.
func validEmailDomain(domain []byte) bool {
	if len(domain) == 0 || domain[0] == '.' || domain[len(domain)-1] == '.' {
		return false
	}
	for _, b := range domain {
		if b == '.' {
			return true
		}
	}
	return false
}

// phoneUSPattern matches DDD-DDD-DDDD or DDD.DDD.DDDD (consistent separator)
// at word boundaries and keeps the last four digits.
type phoneUSPattern struct{}

func (phoneUSPattern) Name() string { return PatternPhoneUS }

func (phoneUSPattern) Apply(input []byte) ([]byte, int) {
	out := make([]byte, 0, len(input))
	count := 0

	for i := 0; i < len(input); {
		if i+12 <= len(input) && isUSPhone(input[i:i+12]) {
			beforeOK := i == 0 || !isWordByte(input[i-1])
			afterOK := i+12 >= len(input) || !isWordByte(input[i+12])
			if beforeOK && afterOK {
				out = append(out, "(XXX) XXX-"...)
				out = append(out, input[i+8:i+12]...)
				i += 12
				count++
				continue
			}
		}

		out = append(out, input[i])
		i++
	}

	return out, count
}

// isUSPhone reports whether s is DDD?DDD?DDDD with ? a consistent '-' or '.'.
func isUSPhone(s []byte) bool {
	if len(s) != 12 {
		return false
	}
	sep := s[3]
	if sep != '-' && sep != '.' {
		return false
	}
	for idx, b := range s {
		switch idx {
		case 3, 7:
			if b != sep {
				return false
			}
		default:
			if !isDigit(b) {
				return false
			}
		}
	}
	return true
}

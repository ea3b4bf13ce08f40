package dhcpv4

import "fmt"

// Option is a single decoded TLV. Value borrows from the buffer it was read
// from and is nil for PAD and END.
type Option struct {
	Code  OptionCode
	Value []byte
}

// ReadOption decodes one option from the front of b and returns the bytes
// after it. PAD and END are single-byte units. ok is false when b is empty or
// the TLV runs past the end of b; nothing is consumed in that case.
func ReadOption(b []byte) (opt Option, rest []byte, ok bool) {
	if len(b) == 0 {
		return Option{}, b, false
	}
	code := OptionCode(b[0])
	if code == OptionPad || code == OptionEnd {
		return Option{Code: code}, b[1:], true
	}
	if len(b) < 2 {
		return Option{}, b, false
	}
	n := int(b[1])
	if len(b) < 2+n {
		return Option{}, b, false
	}
	return Option{Code: code, Value: b[2 : 2+n : 2+n]}, b[2+n:], true
}

// Len returns the length of the value.
func (o Option) Len() int { return len(o.Value) }

func (o Option) IsPad() bool { return o.Code == OptionPad }

func (o Option) IsEnd() bool { return o.Code == OptionEnd }

func (o Option) String() string {
	if o.IsPad() || o.IsEnd() {
		return o.Code.String()
	}
	return fmt.Sprintf("%s(%d)=%x", o.Code, o.Code, o.Value)
}

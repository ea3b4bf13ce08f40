package dhcpv4

import "errors"

// Decoding errors. Every one of them is per-datagram: the caller drops the
// message and carries on.
var (
	ErrShortMessage    = errors.New("dhcpv4: message shorter than 300 bytes")
	ErrHeaderSize      = errors.New("dhcpv4: header must be exactly 236 bytes")
	ErrShortOptions    = errors.New("dhcpv4: options region shorter than 64 bytes")
	ErrBadMagicCookie  = errors.New("dhcpv4: invalid magic cookie")
	ErrTruncatedOption = errors.New("dhcpv4: truncated option")
)

// Encoding errors, reported by Builder.Err and the Finish methods.
var (
	ErrOptionTooLong = errors.New("dhcpv4: option value longer than 255 bytes")
	ErrBufferFull    = errors.New("dhcpv4: message exceeds builder capacity")
	ErrCookieOrder   = errors.New("dhcpv4: magic cookie must be appended once, before any option")
)

package dhcpv4

import (
	"bytes"
	"fmt"
)

// Options is a borrowed view over the options region of a message, starting
// with the magic cookie.
type Options struct {
	b []byte
}

// NewOptions wraps b, which must be at least MinOptionsSize bytes long.
func NewOptions(b []byte) (Options, error) {
	if len(b) < MinOptionsSize {
		return Options{}, fmt.Errorf("%w: got %d", ErrShortOptions, len(b))
	}
	return Options{b: b}, nil
}

// Bytes returns the raw options region, cookie included.
func (o Options) Bytes() []byte { return o.b }

// HasMagicCookie reports whether the region starts with 99.130.83.99.
func (o Options) HasMagicCookie() bool {
	return len(o.b) >= MagicCookieSize && bytes.Equal(o.b[:MagicCookieSize], MagicCookie[:])
}

// TryIter returns an iterator over the options after the cookie.
func (o Options) TryIter() (*Iterator, error) {
	if !o.HasMagicCookie() {
		return nil, ErrBadMagicCookie
	}
	return &Iterator{rest: o.b[MagicCookieSize:]}, nil
}

// Map collects every option into a Map. See CollectMap.
func (o Options) Map() (Map, error) {
	it, err := o.TryIter()
	if err != nil {
		return nil, err
	}
	return CollectMap(it), nil
}

// Iterator walks options lazily. PAD is skipped, END stops iteration and is
// not returned, and so does a TLV that runs past the buffer.
type Iterator struct {
	rest []byte
	done bool
	err  error
}

// Next returns the next option. Once it returns false it keeps doing so.
func (it *Iterator) Next() (Option, bool) {
	for !it.done {
		opt, rest, ok := ReadOption(it.rest)
		if !ok {
			if len(it.rest) > 0 {
				it.err = ErrTruncatedOption
			}
			it.done = true
			break
		}
		it.rest = rest
		switch {
		case opt.IsPad():
			continue
		case opt.IsEnd():
			it.done = true
		default:
			return opt, true
		}
	}
	return Option{}, false
}

// Err returns ErrTruncatedOption if iteration stopped on a malformed TLV.
func (it *Iterator) Err() error { return it.err }

package dhcpv4

// Fixed header layout (RFC 2131 §2). Header and MutableHeader both slice
// through these, so every offset lives here and nowhere else.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+---------------+---------------+---------------+---------------+
//	|     op (1)    |   htype (1)   |   hlen (1)    |   hops (1)    |
//	+---------------+---------------+---------------+---------------+
//	|                            xid (4)                            |
//	+-------------------------------+-------------------------------+
//	|           secs (2)            |           flags (2)           |
//	+-------------------------------+-------------------------------+
//	|                          ciaddr  (4)                          |
//	|                          yiaddr  (4)                          |
//	|                          siaddr  (4)                          |
//	|                          giaddr  (4)                          |
//	+---------------------------------------------------------------+
//	|                          chaddr  (16)                         |
//	+---------------------------------------------------------------+
//	|                          sname   (64)                         |
//	+---------------------------------------------------------------+
//	|                          file    (128)                        |
//	+---------------------------------------------------------------+
type field struct {
	off, size int
}

var (
	fieldOp     = field{0, 1}
	fieldHType  = field{1, 1}
	fieldHLen   = field{2, 1}
	fieldHops   = field{3, 1}
	fieldXID    = field{4, 4}
	fieldSecs   = field{8, 2}
	fieldFlags  = field{10, 2}
	fieldCIAddr = field{12, 4}
	fieldYIAddr = field{16, 4}
	fieldSIAddr = field{20, 4}
	fieldGIAddr = field{24, 4}
	fieldCHAddr = field{28, 16}
	fieldSName  = field{44, 64}
	fieldFile   = field{108, 128}
)

// in returns the bytes of f within a header-sized buffer. The three-index
// slice keeps appends on the result from spilling into the next field.
func (f field) in(b []byte) []byte {
	return b[f.off : f.off+f.size : f.off+f.size]
}

// end is the first offset past f.
func (f field) end() int {
	return f.off + f.size
}

package wire

import "io"

// takeOrErr reads exactly n bytes from r, returning errOnShort (wrapped
// around the underlying cause, if any) the moment fewer than n bytes are
// available. It is the semantic primitive behind every fixed-width read
// in this package: a short read is the only way the read layer signals
// stream exhaustion, short of an I/O failure.
func takeOrErr(r io.Reader, n int, errOnShort func(cause error) error) ([]byte, error) {
	buf := make([]byte, n)

	read, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errOnShort(nil)
		}
		return nil, errOnShort(err)
	}
	if read != n {
		return nil, errOnShort(nil)
	}

	return buf, nil
}

// takeWhileInclusive reads one byte at a time from r for as long as
// pred holds, and returns the slice of bytes read so far *including* the
// first byte for which pred failed. Unlike a plain take-while, the
// terminating byte is part of the result — this is exactly what the
// uvarint reader needs: keep consuming continuation bytes (high bit
// set) and return the final, non-continuation byte along with them.
func takeWhileInclusive(r io.Reader, pred func(b byte) bool) ([]byte, error) {
	var out []byte
	var one [1]byte

	for {
		n, err := io.ReadFull(r, one[:])
		if err != nil || n != 1 {
			return nil, ErrEOF(err)
		}

		out = append(out, one[0])

		if !pred(one[0]) {
			return out, nil
		}
	}
}

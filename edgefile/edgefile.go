package edgefile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/emcc/edgestream"
)

// ErrTruncated indicates a file whose length is not a whole number of
// 16-byte records.
var ErrTruncated = errors.New("edgefile: truncated edge record")

// ErrBadNode indicates a node ID on a reserved sentinel after offset
// adjustment.
var ErrBadNode = errors.New("edgefile: node ID out of valid range")

// Reader is a buffered cursor over a binary edge file.
type Reader struct {
	f   *os.File
	rd  *bufio.Reader
	buf [edgestream.BytesPerEdge]byte
}

// OpenReader opens path for sequential edge reads.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{f: f, rd: bufio.NewReaderSize(f, 1<<16)}, nil
}

// Read returns the next edge, io.EOF at the end, ErrTruncated on a
// partial trailing record.
func (r *Reader) Read() (edgestream.Edge, error) {
	_, err := io.ReadFull(r.rd, r.buf[:])
	if err == io.ErrUnexpectedEOF {
		return edgestream.Edge{}, ErrTruncated
	}
	if err != nil {
		return edgestream.Edge{}, err
	}
	return edgestream.Edge{
		U: edgestream.Node(binary.LittleEndian.Uint64(r.buf[:8])),
		V: edgestream.Node(binary.LittleEndian.Uint64(r.buf[8:])),
	}, nil
}

// Close releases the file.
func (r *Reader) Close() error { return r.f.Close() }

// Writer is a buffered binary edge/star file writer.
type Writer struct {
	f     *os.File
	w     *bufio.Writer
	buf   [edgestream.BytesPerEdge]byte
	count int
}

// CreateWriter creates (or truncates) path.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, w: bufio.NewWriterSize(f, 1<<16)}, nil
}

// WriteEdge appends one edge record.
func (w *Writer) WriteEdge(e edgestream.Edge) error {
	binary.LittleEndian.PutUint64(w.buf[:8], uint64(e.U))
	binary.LittleEndian.PutUint64(w.buf[8:], uint64(e.V))
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return err
	}
	w.count++
	return nil
}

// WriteLabel appends one (node, representative) record.
func (w *Writer) WriteLabel(l edgestream.Label) error {
	return w.WriteEdge(edgestream.Edge{U: l.Node, V: l.Comp})
}

// Count reports the number of records written.
func (w *Writer) Count() int { return w.count }

// Close flushes and releases the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// ReadIntoStream loads a sorted binary edge file into the stream,
// dropping consecutive parallel edges on ingest. Returns the number of
// edges kept and dropped.
func ReadIntoStream(path string, s *edgestream.EdgeStream) (kept, dropped int, err error) {
	r, err := OpenReader(path)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	prev := edgestream.MinEdge
	for {
		e, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return kept, dropped, rerr
		}
		if e == prev {
			dropped++
			continue
		}
		s.Push(e)
		prev = e
		kept++
	}
	return kept, dropped, s.Err()
}

// ASCIIToBinary converts a whitespace-separated edge list to the binary
// layout, skipping skipLines leading lines and adding offset to every
// ID before validation. Returns the number of edges written.
func ASCIIToBinary(in io.Reader, out io.Writer, skipLines int, offset int64) (int, error) {
	br := bufio.NewReaderSize(in, 1<<16)
	for i := 0; i < skipLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return 0, nil
			}
			return 0, err
		}
	}

	bw := bufio.NewWriterSize(out, 1<<16)
	var buf [edgestream.BytesPerEdge]byte
	count := 0
	var pair [2]uint64
	idx := 0
	var cur uint64
	inNum := false

	flushNum := func() error {
		if !inNum {
			return nil
		}
		adjusted := int64(cur) + offset
		if adjusted <= int64(edgestream.MinNode) || uint64(adjusted) >= uint64(edgestream.OutNodeSwitch) {
			return fmt.Errorf("%w: %d", ErrBadNode, adjusted)
		}
		pair[idx] = uint64(adjusted)
		idx++
		inNum = false
		if idx == 2 {
			binary.LittleEndian.PutUint64(buf[:8], pair[0])
			binary.LittleEndian.PutUint64(buf[8:], pair[1])
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
			count++
			idx = 0
		}
		return nil
	}

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if b >= '0' && b <= '9' {
			cur = cur*10 + uint64(b-'0')
			inNum = true
			continue
		}
		if err := flushNum(); err != nil {
			return count, err
		}
		cur = 0
	}
	if err := flushNum(); err != nil {
		return count, err
	}
	if idx != 0 {
		return count, fmt.Errorf("edgefile: odd number of node IDs in ASCII input")
	}
	return count, bw.Flush()
}

// BinaryToASCII converts the binary layout to one "u v" line per edge.
func BinaryToASCII(in io.Reader, out io.Writer) (int, error) {
	br := bufio.NewReaderSize(in, 1<<16)
	bw := bufio.NewWriterSize(out, 1<<16)
	var buf [edgestream.BytesPerEdge]byte
	count := 0
	for {
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return count, ErrTruncated
		}
		if err != nil {
			return count, err
		}
		u := binary.LittleEndian.Uint64(buf[:8])
		v := binary.LittleEndian.Uint64(buf[8:])
		if _, err := fmt.Fprintf(bw, "%d %d\n", u, v); err != nil {
			return count, err
		}
		count++
	}
	return count, bw.Flush()
}

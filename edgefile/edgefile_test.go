package edgefile_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/edgefile"
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

func writeEdges(t *testing.T, path string, edges []edgestream.Edge) {
	t.Helper()
	w, err := edgefile.CreateWriter(path)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, w.WriteEdge(e))
	}
	require.NoError(t, w.Close())
}

func TestWriterReaderRoundTrip(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "edges.bin")
	in := []edgestream.Edge{{1, 2}, {2, 3}, {100, 2000}}
	writeEdges(t, path, in)

	r, err := edgefile.OpenReader(path)
	require.NoError(err)
	defer r.Close()
	var got []edgestream.Edge
	for {
		e, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		require.NoError(rerr)
		got = append(got, e)
	}
	require.Equal(in, got)
}

func TestReaderTruncated(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "bad.bin")
	writeEdges(t, path, []edgestream.Edge{{1, 2}})
	appendBytes(t, path, []byte{1, 2, 3})

	r, err := edgefile.OpenReader(path)
	require.NoError(err)
	defer r.Close()
	_, err = r.Read()
	require.NoError(err)
	_, err = r.Read()
	require.ErrorIs(err, edgefile.ErrTruncated)
}

func appendBytes(t *testing.T, path string, b []byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write(b)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestReadIntoStreamDropsParallels(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "dup.bin")
	writeEdges(t, path, []edgestream.Edge{{1, 2}, {1, 2}, {2, 3}})

	s := edgestream.NewEdgeStream()
	defer s.Close()
	kept, dropped, err := edgefile.ReadIntoStream(path, s)
	require.NoError(err)
	require.Equal(2, kept)
	require.Equal(1, dropped)
	s.Consume()
	require.Equal(edgestream.Edge{1, 2}, s.Peek())
}

func TestASCIIToBinary(t *testing.T) {
	require := require.New(t)
	in := strings.NewReader("# header line\n0 1\n1 2\n\n2 3\n")
	var out bytes.Buffer
	// skip the header, shift zero-based IDs up by one
	count, err := edgefile.ASCIIToBinary(in, &out, 1, 1)
	require.NoError(err)
	require.Equal(3, count)

	edges, err := edgefile.BinaryToASCII(bytes.NewReader(out.Bytes()), io.Discard)
	require.NoError(err)
	require.Equal(3, edges)

	var ascii bytes.Buffer
	_, err = edgefile.BinaryToASCII(bytes.NewReader(out.Bytes()), &ascii)
	require.NoError(err)
	require.Equal("1 2\n2 3\n3 4\n", ascii.String())
}

func TestASCIIToBinaryRejectsSentinels(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	_, err := edgefile.ASCIIToBinary(strings.NewReader("0 1\n"), &out, 0, 0)
	require.ErrorIs(err, edgefile.ErrBadNode, "ID 0 is the reserved lower sentinel")
}

func TestCountNodes(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "count.bin")
	writeEdges(t, path, []edgestream.Edge{{1, 2}, {1, 3}, {2, 3}, {7, 9}})

	for _, external := range []bool{false, true} {
		res, err := edgefile.CountNodes(path, external, extsort.TestingLimits())
		require.NoError(err)
		require.Equal(uint64(5), res.Nodes, "external=%v", external)
		require.Equal(edgestream.Node(9), res.MaxID)
		require.Equal(uint64(4), res.Edges)
	}
}

func TestCheckStars(t *testing.T) {
	require := require.New(t)
	good := filepath.Join(t.TempDir(), "good.bin")
	writeEdges(t, good, []edgestream.Edge{{1, 3}, {2, 3}, {3, 3}, {4, 4}})
	check, err := edgefile.CheckStars(good)
	require.NoError(err)
	require.True(check.OK)
	require.Equal(4, check.Labels)
	require.Equal(2, check.Components)
	require.Equal(3, check.Sizes[3])
	require.Equal(1, check.Sizes[4])

	bad := filepath.Join(t.TempDir(), "bad.bin")
	writeEdges(t, bad, []edgestream.Edge{{1, 3}, {2, 3}})
	check, err = edgefile.CheckStars(bad)
	require.NoError(err)
	require.False(check.OK, "3 never maps to itself")
}

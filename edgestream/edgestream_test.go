package edgestream_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/emcc/edgestream"
)

type EdgeStreamSuite struct {
	suite.Suite
	s *edgestream.EdgeStream
}

func (s *EdgeStreamSuite) SetupTest() {
	s.s = edgestream.NewEdgeStream()
}

func (s *EdgeStreamSuite) drain() []edgestream.Edge {
	var out []edgestream.Edge
	for !s.s.Empty() {
		out = append(out, s.s.Peek())
		s.s.Next()
	}
	return out
}

func (s *EdgeStreamSuite) TestRoundTrip() {
	require := require.New(s.T())
	in := []edgestream.Edge{{1, 2}, {1, 5}, {2, 3}, {2, 3}, {4, 4}, {7, 9}}
	for _, e := range in {
		s.s.Push(e)
	}
	require.Equal(len(in), s.s.Size())
	require.Equal(1, s.s.SelfLoops(), "the (4,4) edge is a self-loop")
	require.Equal(1, s.s.MultiEdges(), "the repeated (2,3) edge is parallel")

	s.s.Consume()
	require.Equal(in, s.drain())

	// rewind replays from the start
	s.s.Rewind()
	require.Equal(in, s.drain())
}

func (s *EdgeStreamSuite) TestEmptyWhileWriting() {
	require := require.New(s.T())
	require.True(s.s.Empty(), "write-state stream reads as empty")
	s.s.Push(edgestream.Edge{1, 2})
	require.True(s.s.Empty())
	s.s.Consume()
	require.False(s.s.Empty())
}

func (s *EdgeStreamSuite) TestClearReturnsToWriting() {
	require := require.New(s.T())
	s.s.Push(edgestream.Edge{1, 2})
	s.s.Consume()
	s.s.Clear()
	require.Equal(0, s.s.Size())
	s.s.Push(edgestream.Edge{3, 4})
	s.s.Consume()
	require.Equal([]edgestream.Edge{{3, 4}}, s.drain())
}

func (s *EdgeStreamSuite) TestOrderViolationPanics() {
	require := require.New(s.T())
	s.s.Push(edgestream.Edge{5, 6})
	require.Panics(func() { s.s.Push(edgestream.Edge{4, 9}) })
}

func (s *EdgeStreamSuite) TestPolicyViolationsPanic() {
	require := require.New(s.T())
	strict := edgestream.NewEdgeStreamWith(edgestream.EdgeStreamOptions{})
	strict.Push(edgestream.Edge{1, 2})
	require.Panics(func() { strict.Push(edgestream.Edge{1, 2}) }, "parallel against policy")
	require.Panics(func() { strict.Push(edgestream.Edge{3, 3}) }, "self-loop against policy")
}

func (s *EdgeStreamSuite) TestReservedIDsPanic() {
	require := require.New(s.T())
	require.Panics(func() { s.s.Push(edgestream.Edge{edgestream.MinNode, 2}) })
	require.Panics(func() { s.s.Push(edgestream.Edge{1, edgestream.OutNodeSwitch}) })
}

func (s *EdgeStreamSuite) TestLongSourceRuns() {
	require := require.New(s.T())
	var in []edgestream.Edge
	for u := edgestream.Node(1); u <= 50; u++ {
		for v := u + 1; v <= u+20; v++ {
			in = append(in, edgestream.Edge{u, v})
		}
	}
	for _, e := range in {
		s.s.Push(e)
	}
	s.s.Consume()
	require.Equal(in, s.drain())
}

func TestEdgeStreamSuite(t *testing.T) {
	suite.Run(t, new(EdgeStreamSuite))
}

func TestEdgeNormalized(t *testing.T) {
	require := require.New(t)
	require.Equal(edgestream.Edge{2, 5}, edgestream.Edge{5, 2}.Normalized())
	require.Equal(edgestream.Edge{2, 5}, edgestream.Edge{2, 5}.Normalized())
	require.True(edgestream.Edge{3, 3}.SelfLoop())
	require.False(edgestream.Edge{3, 4}.SelfLoop())
}

func TestOrderings(t *testing.T) {
	require := require.New(t)
	lex := edgestream.Lex{}
	require.True(lex.Less(edgestream.Edge{1, 5}, edgestream.Edge{2, 1}))
	require.True(lex.Less(edgestream.Edge{1, 2}, edgestream.Edge{1, 3}))

	rev := edgestream.ReverseLex{}
	require.True(rev.Less(edgestream.Edge{9, 2}, edgestream.Edge{1, 3}))

	pq := edgestream.PQContract{}
	require.True(pq.Less(edgestream.Edge{1, 2}, edgestream.Edge{2, 9}), "smaller source first")
	require.True(pq.Less(edgestream.Edge{1, 9}, edgestream.Edge{1, 2}), "larger target first within a source")

	un := edgestream.UnorderedLex{}
	require.False(un.Less(edgestream.Edge{5, 2}, edgestream.Edge{2, 5}))
	require.False(un.Less(edgestream.Edge{2, 5}, edgestream.Edge{5, 2}))
}

package edgestream

// Stream is the pull cursor every pipeline stage speaks: Peek returns
// the current item without consuming it, Next moves forward. Calling
// Peek or Next on an exhausted stream is a programming error.
type Stream[T any] interface {
	Empty() bool
	Peek() T
	Next()
}

// Rewindable is a Stream whose cursor can be restarted at the first item.
type Rewindable[T any] interface {
	Stream[T]
	Rewind()
}

// Pusher is the push half of the stream algebra: sorters, queues,
// sequences and base cases all accept items this way.
type Pusher[T any] interface {
	Push(T)
}

// Flush drains in into out. The pull-to-push bridge at the end of most
// pipelines.
func Flush[T any](in Stream[T], out Pusher[T]) {
	for !in.Empty() {
		out.Push(in.Peek())
		in.Next()
	}
}

// FlushFunc drains in, applying fn to every item.
func FlushFunc[T any](in Stream[T], fn func(T)) {
	for !in.Empty() {
		fn(in.Peek())
		in.Next()
	}
}

// Drain advances in to exhaustion, discarding items. Used to drive
// side-effecting adapters through their first pass.
func Drain[T any](in Stream[T]) {
	for !in.Empty() {
		in.Next()
	}
}

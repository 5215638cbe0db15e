package llm

import "io"

// Stream is a lazy sequence of text chunks read from an open response body.
// It is finite until the connection closes and restartable only by issuing a
// new request. Recv returns io.EOF when the provider finishes.
type Stream struct {
	body io.ReadCloser
	buf  []byte
}

func NewStream(body io.ReadCloser) *Stream {
	return &Stream{
		body: body,
		buf:  make([]byte, 4096),
	}
}

func (s *Stream) Recv() (string, error) {
	for {
		n, err := s.body.Read(s.buf)
		if n > 0 {
			// A read error alongside data surfaces on the next Recv.
			return string(s.buf[:n]), nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *Stream) Close() error {
	return s.body.Close()
}

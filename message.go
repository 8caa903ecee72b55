package sdl

import (
	"fmt"
	"io"
)

// MaxData is the most data bytes a single frame can carry. The length
// byte counts itself, the data and the checksum, and tops out at 255.
const MaxData = 252

// Message is one SDL frame stripped of its length and checksum.
type Message struct {
	Header Header
	Data   []byte
}

func NewMessage(header Header, data []byte) *Message {
	return &Message{
		Header: header,
		Data:   data,
	}
}

// MarshalBinary frames the message for the wire.
func (m *Message) MarshalBinary() ([]byte, error) {
	if len(m.Data) > MaxData {
		return nil, fmt.Errorf("data size is too big: %d", len(m.Data))
	}
	buf := make([]byte, 0, len(m.Data)+3)
	buf = append(buf, byte(m.Header), byte(1+1+len(m.Data)+1))
	buf = append(buf, m.Data...)
	return append(buf, Checksum(buf)), nil
}

func (m *Message) String() string {
	return fmt.Sprintf("header: 0x%02X, data: [% X]", byte(m.Header), m.Data)
}

// Checksum returns the two's complement of the byte sum, so a frame with
// its checksum appended sums to zero mod 256.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return -sum
}

// ReadMessage reads one frame from r and returns its data bytes. The
// frame must lead with the wanted header, checked before anything else
// since the echoed header is the only correlation on this wire.
func ReadMessage(r io.Reader, want Header) ([]byte, error) {
	var head [2]byte
	if err := ReadFull(r, head[:1]); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if got := Header(head[0]); got != want {
		return nil, &HeaderMismatchError{Want: want, Got: got}
	}
	if err := ReadFull(r, head[1:]); err != nil {
		return nil, fmt.Errorf("reading length: %w", err)
	}
	if head[1] < 3 {
		return nil, &InvalidLengthError{Length: head[1]}
	}

	frame := make([]byte, int(head[1]))
	frame[0], frame[1] = head[0], head[1]
	if err := ReadFull(r, frame[2:]); err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if Checksum(frame[:len(frame)-1]) != frame[len(frame)-1] {
		return nil, &ChecksumMismatchError{Frame: frame}
	}
	return frame[2 : len(frame)-1], nil
}

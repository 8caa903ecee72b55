package sdl

import (
	"errors"
	"fmt"
)

var (
	ErrReadTimeout = errors.New("read timeout")
	ErrPortClosed  = errors.New("port closed")
)

// HeaderMismatchError means a reply did not lead with the header of the
// request it answers.
type HeaderMismatchError struct {
	Want, Got Header
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("header mismatch: sent 0x%02X, reply leads with 0x%02X", byte(e.Want), byte(e.Got))
}

// ChecksumMismatchError carries the whole offending frame for logging.
type ChecksumMismatchError struct {
	Frame []byte
}

func (e *ChecksumMismatchError) Error() string {
	n := len(e.Frame)
	return fmt.Sprintf("checksum mismatch: calculated 0x%02X, frame carries 0x%02X [% X]",
		Checksum(e.Frame[:n-1]), e.Frame[n-1], e.Frame)
}

// InvalidLengthError means a length byte cannot describe a frame. The
// shortest legal frame declares 0x03.
type InvalidLengthError struct {
	Length byte
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length byte 0x%02X", e.Length)
}

// UnexpectedResponseError means the ECU answered an actuation with data
// where an empty acknowledgement was expected.
type UnexpectedResponseError struct {
	Data []byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected actuator response: [% X]", e.Data)
}

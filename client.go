package sdl

import (
	"context"
	"fmt"
)

// Client drives transactions on the scan tool side of the link. One
// request gets exactly one reply and nothing is retried: a corrupt frame
// fails the call and the caller decides whether the cycle mattered.
//
// A Client is not safe for concurrent use. The wire is strictly one
// transaction at a time anyway.
type Client struct {
	port Port
}

func New(port Port) *Client {
	return &Client{
		port: port,
	}
}

func (c *Client) Close() error {
	return c.port.Close()
}

// ECUID asks the ECU to identify itself. The payload renders as zero
// padded decimal fields, 0x19 0x43 reads 2567 on the sticker.
func (c *Client) ECUID(ctx context.Context) ([]byte, error) {
	return c.transact(ctx, NewMessage(HeaderECUID, nil))
}

// Poll reads one byte per address in a single transaction. The reply
// payload is positional, value i belongs to addresses[i].
func (c *Client) Poll(ctx context.Context, addresses []byte) ([]byte, error) {
	data, err := c.transact(ctx, NewMessage(HeaderReadData, addresses))
	if err != nil {
		return nil, err
	}
	if len(data) != len(addresses) {
		return nil, fmt.Errorf("poll reply carries %d values for %d addresses", len(data), len(addresses))
	}
	return data, nil
}

// transact writes the request, drains the request's own echo off the
// looped wire and decodes the reply.
func (c *Client) transact(ctx context.Context, msg *Message) ([]byte, error) {
	frame, err := msg.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := c.port.Write(frame)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	if err := ReadFull(c.port, make([]byte, n)); err != nil {
		return nil, fmt.Errorf("draining own echo: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadMessage(c.port, msg.Header)
}

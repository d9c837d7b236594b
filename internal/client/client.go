// Package client provides a more convenient wrapper around the redigo client.
package client

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/gomodule/redigo/redis"
)

// Client is a type-safe, lower-boilerplate wrapper around the redigo client.
// It doesn't have all the flexibility of a plain redigo connection, but it
// introduces less noise in tests.
//
// Clients are not safe for concurrent use.
type Client struct {
	conn    redis.Conn
	connErr error
}

// New creates a new Client.
func New(addr net.Addr) (*Client, error) {
	conn, err := redis.Dial("tcp", addr.String())
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Ping the server.
func (c *Client) Ping() error {
	if c.connErr != nil {
		return fmt.Errorf("conn unusable: %w", c.connErr)
	}
	res, err := c.conn.Do("PING")
	if err != nil {
		return err
	}
	r, ok := res.(string)
	if !ok {
		return fmt.Errorf("unexpected ping response type: %T", res)
	}
	if r != "PONG" {
		return fmt.Errorf("unexpected ping response: %s", r)
	}
	return c.checkConn()
}

// Generate asks the server for a passphrase of words words, substitutions of
// which have a symbol substituted in.
func (c *Client) Generate(words, substitutions int) (string, error) {
	if c.connErr != nil {
		return "", fmt.Errorf("conn unusable: %w", c.connErr)
	}
	res, err := c.conn.Do("GENERATE", words, substitutions)
	if err != nil {
		return "", err
	}
	r, ok := res.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected generate response type: %T", res)
	}
	if err := c.checkConn(); err != nil {
		return "", err
	}
	return string(r), nil
}

// GenerateDefault asks the server for a passphrase with the server's default
// word and substitution counts.
func (c *Client) GenerateDefault() (string, error) {
	if c.connErr != nil {
		return "", fmt.Errorf("conn unusable: %w", c.connErr)
	}
	res, err := c.conn.Do("GENERATE")
	if err != nil {
		return "", err
	}
	r, ok := res.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected generate response type: %T", res)
	}
	if err := c.checkConn(); err != nil {
		return "", err
	}
	return string(r), nil
}

// Entropy reports the server's entropy estimate, in bits, for a passphrase
// of words words with substitutions symbol substitutions.
func (c *Client) Entropy(words, substitutions int) (float64, error) {
	if c.connErr != nil {
		return 0, fmt.Errorf("conn unusable: %w", c.connErr)
	}
	res, err := c.conn.Do("ENTROPY", words, substitutions)
	if err != nil {
		return 0, err
	}
	r, ok := res.([]byte)
	if !ok {
		return 0, fmt.Errorf("unexpected entropy response type: %T", res)
	}
	bits, err := strconv.ParseFloat(string(r), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected entropy response: %q", r)
	}
	if err := c.checkConn(); err != nil {
		return 0, err
	}
	return bits, nil
}

// Words reports the number of entries in the server's wordlist.
func (c *Client) Words() (int, error) {
	if c.connErr != nil {
		return 0, fmt.Errorf("conn unusable: %w", c.connErr)
	}
	res, err := c.conn.Do("WORDS")
	if err != nil {
		return 0, err
	}
	r, ok := res.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected words response type: %T", res)
	}
	if err := c.checkConn(); err != nil {
		return 0, err
	}
	return int(r), nil
}

// Close the underlying connection.
func (c *Client) Close() error {
	if c.connErr != nil {
		return fmt.Errorf("conn unusable: %w", c.connErr)
	}
	if err := c.conn.Close(); err != nil {
		c.connErr = err
		return err
	}
	return nil
}

// CloseAndLog closes the connection, logging any error. Handy in defers.
func (c *Client) CloseAndLog(logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("client close failed", "err", err)
	}
}

// checkConn latches connection-level errors, poisoning the Client. Protocol
// errors (ERR replies) don't trip it; losing the conn does.
func (c *Client) checkConn() error {
	if err := c.conn.Err(); err != nil {
		c.connErr = err
		_ = c.conn.Close()
		return fmt.Errorf("conn unusable: %w", err)
	}
	return nil
}

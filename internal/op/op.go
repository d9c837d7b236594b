// Package op provides constants for the passphrase protocol operations.
package op

import "strings"

// An Op is a protocol operation understood by the passphrase server.
type Op string

const (
	Generate Op = "generate"
	Entropy  Op = "entropy"
	Words    Op = "words"
	Ping     Op = "ping"
	Quit     Op = "quit"
)

// New creates an Op from wire data. It does not validate that the operation is
// supported.
func New(op []byte) Op {
	return Op(strings.ToLower(string(op)))
}

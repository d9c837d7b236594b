// Package server vends diceware passphrases over a Valkey-style wire
// protocol.
package server

import (
	"fmt"
	"net"
	"strconv"

	"github.com/tidwall/redcon"

	"github.com/dicepass/dicepass/internal/diceware"
	"github.com/dicepass/dicepass/internal/op"
	"github.com/dicepass/dicepass/internal/wordlist"
)

type Config struct {
	// Wordlist backs every generated passphrase. Required.
	Wordlist *wordlist.List
	// DefaultWords and DefaultSubstitutions apply when a request omits
	// them.
	DefaultWords         int
	DefaultSubstitutions int
	// MaxWords caps the per-request word count. Zero means no cap.
	MaxWords int
	// Separator joins passphrase words. Empty means a single space.
	Separator string
}

type Server struct {
	cfg Config
	gen *diceware.Generator

	close func() error // set in ServeTCP
}

func New(cfg Config) *Server {
	return &Server{
		cfg: cfg,
		gen: diceware.New(diceware.Config{
			Wordlist:  cfg.Wordlist,
			Separator: cfg.Separator,
		}),
	}
}

func (s *Server) ServeTCP(ln net.Listener) error {
	rs := redcon.NewServerNetwork("tcp", ln.Addr().String(), s.handle, s.accept, s.onClosed)
	s.close = rs.Close
	return rs.Serve(ln)
}

func (s *Server) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func (s *Server) handle(conn redcon.Conn, cmd redcon.Command) {
	name := op.New(cmd.Args[0])
	var args []string
	if len(cmd.Args) > 1 {
		args = make([]string, 0, len(cmd.Args))
		for _, arg := range cmd.Args[1:] {
			args = append(args, string(arg))
		}
	}
	switch name {
	case op.Generate:
		s.generate(conn, args)
	case op.Entropy:
		s.entropy(conn, args)
	case op.Words:
		s.words(conn, args)
	case op.Ping:
		s.ping(conn, args)
	case op.Quit:
		s.quit(conn, args)
	default:
		conn.WriteError(fmt.Sprintf("ERR unknown command '%s'", name))
	}
}

func (s *Server) accept(conn redcon.Conn) bool {
	return true
}

func (s *Server) onClosed(conn redcon.Conn, err error) {
}

// requestCounts parses the optional [words [substitutions]] arguments,
// falling back to the configured defaults.
func (s *Server) requestCounts(args []string) (words, substitutions int, err error) {
	words = s.cfg.DefaultWords
	substitutions = s.cfg.DefaultSubstitutions
	if len(args) > 0 {
		words, err = strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("words must be an integer: %q", args[0])
		}
	}
	if len(args) > 1 {
		substitutions, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("substitutions must be an integer: %q", args[1])
		}
	}
	return words, substitutions, nil
}

func (s *Server) generate(conn redcon.Conn, args []string) {
	if len(args) > 2 {
		writeErrArity(conn, op.Generate)
		return
	}

	words, substitutions, err := s.requestCounts(args)
	if err != nil {
		writeErr(conn, err)
		return
	}
	if s.cfg.MaxWords > 0 && words > s.cfg.MaxWords {
		writeErr(conn, fmt.Errorf("at max capacity of %d words", s.cfg.MaxWords))
		return
	}

	phrase, err := s.gen.Generate(words, substitutions)
	if err != nil {
		writeErr(conn, err)
		return
	}
	conn.WriteBulkString(phrase)
}

func (s *Server) entropy(conn redcon.Conn, args []string) {
	if len(args) > 2 {
		writeErrArity(conn, op.Entropy)
		return
	}

	words, substitutions, err := s.requestCounts(args)
	if err != nil {
		writeErr(conn, err)
		return
	}
	bits := diceware.Entropy(s.cfg.Wordlist.Len(), words, substitutions)
	conn.WriteBulkString(strconv.FormatFloat(bits, 'f', -1, 64))
}

func (s *Server) words(conn redcon.Conn, args []string) {
	if len(args) > 0 {
		writeErrArity(conn, op.Words)
		return
	}
	conn.WriteInt(s.cfg.Wordlist.Len())
}

func (s *Server) ping(conn redcon.Conn, args []string) {
	conn.WriteString("PONG")
}

func (s *Server) quit(conn redcon.Conn, args []string) {
	conn.WriteString("OK")
	conn.Close()
}

func writeErrArity(conn redcon.Conn, op op.Op) {
	conn.WriteError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", op))
}

func writeErr(conn redcon.Conn, err error) {
	conn.WriteError(fmt.Sprintf("ERR %v", err))
}

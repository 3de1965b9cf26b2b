package adapter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// ErrNoAPIKey is returned when first-run setup ends without an API key
var ErrNoAPIKey = errors.New("no catalog API key entered")

// Prompter reads first-run answers from the user
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	secret func(fd int) ([]byte, error)
}

// NewPrompter creates a prompter reading from in. When fd refers to a
// terminal, secret input is read without echo.
func NewPrompter(in io.Reader, out io.Writer, fd int) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
	if term.IsTerminal(fd) {
		p.secret = term.ReadPassword
	}
	return p
}

// Line prompts for a single line of visible input
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Secret prompts for input that should not be echoed
func (p *Prompter) Secret(label string) (string, error) {
	if p.secret == nil {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := p.secret(p.fd)
	fmt.Fprintln(p.out) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// RunSetup asks for the catalog API key (and optionally a review store DSN)
// and fills them into cfg. It does not save.
func RunSetup(cfg *Config, p *Prompter) error {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Welcome to Cinelist!")
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Movie data comes from %s on RapidAPI.\n", cfg.Catalog.Host)

	key, err := p.Secret("API key: ")
	if err != nil {
		return err
	}
	if key == "" {
		return ErrNoAPIKey
	}
	cfg.Catalog.APIKey = key

	if !cfg.ReviewsEnabled() {
		dsn, err := p.Line("PostgreSQL URL for reviews (leave empty to skip): ")
		if err != nil {
			return err
		}
		cfg.Reviews.DSN = dsn
	}

	return nil
}

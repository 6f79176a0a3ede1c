package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/pdsmelt"
	"github.com/wippyai/pdsmelt/boundary"
	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/resource"
	"github.com/wippyai/pdsmelt/token"
)

const (
	targetSave = "save"
	targetMeta = "meta"
)

type options struct {
	target  string
	path    string
	game    string
	out     string
	tokens  string
	utf8    bool
	verbose bool
}

func main() {
	var opts options
	flag.StringVar(&opts.game, "game", "", "Game of the save (eu4, ck3, imperator, hoi4, vic3, eu5); defaults to the file extension")
	flag.StringVar(&opts.out, "o", "", "Write the melted text to this file")
	flag.StringVar(&opts.tokens, "tokens", "", "YAML file naming a token table per game")
	flag.BoolVar(&opts.utf8, "utf8", false, "Transcode Windows-1252 output to UTF-8")
	flag.BoolVar(&opts.verbose, "v", false, "Log handle and token table activity to stderr")
	interactive := flag.Bool("i", false, "Interactive mode with TUI")
	flag.Parse()

	args := flag.Args()
	switch len(args) {
	case 1:
		opts.target, opts.path = targetSave, args[0]
	case 2:
		opts.target, opts.path = args[0], args[1]
	}
	if opts.path == "" || (opts.target != targetSave && opts.target != targetMeta) {
		fmt.Fprintln(os.Stderr, "Usage: melt [-game name] [-o out.txt] [-utf8] [-tokens tokens.yaml] [save|meta] <file>")
		fmt.Fprintln(os.Stderr, "       melt -i <file>  (interactive mode)")
		os.Exit(1)
	}

	sync, err := setup(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sync()

	if *interactive {
		err = runInteractive(opts)
	} else {
		err = run(opts)
	}
	if err != nil {
		sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup installs loggers and token tables. The returned func flushes logs.
func setup(opts options) (func(), error) {
	flush := func() {}
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		boundary.SetLogger(l)
		token.SetLogger(l)
		flush = func() { _ = l.Sync() }
	}

	if opts.tokens != "" {
		data, err := os.ReadFile(opts.tokens)
		if err != nil {
			return nil, fmt.Errorf("read token config: %w", err)
		}
		paths, err := token.ParseConfig(data)
		if err != nil {
			return nil, err
		}
		if err := token.Configure(paths); err != nil {
			return nil, err
		}
	}
	return flush, nil
}

func gameOf(opts options) (pdsmelt.Game, error) {
	if opts.game != "" {
		g, ok := pdsmelt.ParseGame(opts.game)
		if !ok {
			return 0, fmt.Errorf("unknown game %q", opts.game)
		}
		return g, nil
	}
	g, ok := pdsmelt.GameFromPath(opts.path)
	if !ok {
		return 0, fmt.Errorf("cannot tell the game of %s from its extension; pass -game", opts.path)
	}
	return g, nil
}

func run(opts options) (err error) {
	game, err := gameOf(opts)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(opts.path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	b := boundary.New()
	defer func() { err = multierr.Append(err, b.Close()) }()

	m, err := meltFile(b, game, data, opts.target)
	if err != nil {
		return err
	}
	m.warn(opts.path)
	return emit(opts, m)
}

// melted is the outcome of one melt.
type melted struct {
	game     pdsmelt.Game
	target   string
	data     []byte
	binary   bool
	verbatim bool
	unknown  bool
}

// meltFile drives a melt through the handle protocol the way a C caller
// does. Every handle is released before it returns.
func meltFile(b *boundary.Boundary, game pdsmelt.Game, data []byte, target string) (*melted, error) {
	res := b.OpenFile(game, data)
	defer b.ReleaseResult(res)
	if e := b.FileError(res); e != 0 {
		return nil, takeError(b, e)
	}
	file := b.FileValue(res)
	defer b.ReleaseFile(file)

	out := &melted{game: game, target: target, binary: b.FileIsBinary(file)}

	var mres resource.Handle
	if target == targetMeta {
		meta := b.FileMeta(file)
		if meta == 0 {
			return nil, errors.Unsupported(errors.PhaseMeta, game.String()+" save has no readable metadata")
		}
		defer b.ReleaseMeta(meta)
		mres = b.MetaMelt(meta)
	} else {
		mres = b.FileMelt(file)
	}
	defer b.ReleaseResult(mres)
	if e := b.MeltError(mres); e != 0 {
		return nil, takeError(b, e)
	}
	m := b.MeltValue(mres)
	defer b.ReleaseMelt(m)

	out.unknown = b.MeltUnknownTokens(m)
	if b.MeltIsVerbatim(m) {
		out.verbatim = true
		out.data = data
		return out, nil
	}

	out.data = make([]byte, b.MeltLength(m))
	if n := b.MeltWrite(m, out.data); n != len(out.data) {
		return nil, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			Game(game.String()).
			Detail("wrote %d of %d bytes", n, len(out.data)).
			Build()
	}
	return out, nil
}

func takeError(b *boundary.Boundary, e resource.Handle) error {
	defer b.ReleaseError(e)
	err, _ := b.Err(e)
	return err
}

func (m *melted) warn(path string) {
	if m.binary {
		fmt.Fprintf(os.Stderr, "warning: %s is binary; field names depend on the %s token table\n", path, m.game)
	}
	if m.unknown {
		fmt.Fprintf(os.Stderr, "warning: unresolved tokens were written as __unknown_0x placeholders; set %s\n", m.game.TokenEnv())
	}
}

// text returns the output bytes, transcoded to UTF-8 when asked.
func (m *melted) text(toUTF8 bool) ([]byte, error) {
	if !toUTF8 {
		return m.data, nil
	}
	out, err := m.game.Charset().NewDecoder().Bytes(m.data)
	if err != nil {
		return nil, fmt.Errorf("transcode: %w", err)
	}
	return out, nil
}

func (m *melted) summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game:      %s\n", m.game)
	fmt.Fprintf(&b, "Target:    %s\n", m.target)
	fmt.Fprintf(&b, "Binary:    %t\n", m.binary)
	fmt.Fprintf(&b, "Verbatim:  %t\n", m.verbatim)
	fmt.Fprintf(&b, "Unknown:   %t\n", m.unknown)
	fmt.Fprintf(&b, "Length:    %d bytes\n", len(m.data))
	return b.String()
}

func emit(opts options, m *melted) (err error) {
	data, err := m.text(opts.utf8)
	if err != nil {
		return err
	}

	if opts.out != "" {
		f, cerr := os.Create(opts.out)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		_, err = f.Write(data)
		return err
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(m.summary())
		fmt.Println("\nRedirect stdout or pass -o to write the text.")
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

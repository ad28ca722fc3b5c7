// Command mython is the language's CLI driver: it wires together
// pkg/manifest, pkg/vendor, pkg/parser, and pkg/interpreter behind a
// hand-rolled subcommand dispatch, in the shape of the teacher's
// cmd/able/main.go (able/interpreter10-go) — plain run(args)int,
// os.Exit at the edge, fmt.Fprintf diagnostics, no CLI framework.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/maslov-k/cpp-mython/pkg/interpreter"
	"github.com/maslov-k/cpp-mython/pkg/lexer"
	"github.com/maslov-k/cpp-mython/pkg/manifest"
	"github.com/maslov-k/cpp-mython/pkg/parser"
	"github.com/maslov-k/cpp-mython/pkg/runtime"
	"github.com/maslov-k/cpp-mython/pkg/token"
	"github.com/maslov-k/cpp-mython/pkg/vendor"
)

const manifestName = "mython.yml"

var errManifestNotFound = errors.New("mython.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}
	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "run":
		return runRun(args[1:])
	case "vendor":
		return runVendor(args[1:])
	case "tokens":
		return runTokens(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: mython run <source> <dest>")
	fmt.Fprintln(os.Stderr, "       mython run                 (uses mython.yml in the current directory)")
	fmt.Fprintln(os.Stderr, "       mython vendor")
	fmt.Fprintln(os.Stderr, "       mython tokens <source>")
}

func runRun(args []string) int {
	switch len(args) {
	case 0:
		return runManifest()
	case 2:
		return runFile(args[0], args[1])
	default:
		fmt.Fprintln(os.Stderr, "mython run takes either no arguments or exactly <source> <dest>")
		return 1
	}
}

func runFile(source, dest string) int {
	src, err := os.ReadFile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", source, err)
		return 1
	}
	out, err := os.Create(dest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", dest, err)
		return 1
	}
	defer out.Close()

	if err := execute(src, out); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func runManifest() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}
	m, err := loadManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if _, err := vendor.Fetch(cwd, m); err != nil {
		fmt.Fprintf(os.Stderr, "failed to vendor libraries: %v\n", err)
		return 1
	}
	src, err := assembleSource(cwd, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if err := execute(src, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func runVendor(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "mython vendor takes no arguments")
		return 1
	}
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}
	m, err := loadManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fetched, err := vendor.Fetch(cwd, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to vendor libraries: %v\n", err)
		return 1
	}
	for _, name := range fetched {
		fmt.Fprintf(os.Stdout, "vendored %s\n", name)
	}
	return 0
}

func runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "mython tokens requires exactly one <source> argument")
		return 1
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", args[0], err)
		return 1
	}
	if err := printTokens(src, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func loadManifest(dir string) (*manifest.Manifest, error) {
	path := filepath.Join(dir, manifestName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errManifestNotFound
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return m, nil
}

// assembleSource concatenates every vendored library's source ahead of
// the manifest's entry file, since Mython has no runtime import
// statement: composition happens once, at text-assembly time.
func assembleSource(root string, m *manifest.Manifest) ([]byte, error) {
	var out []byte
	for _, lib := range m.Libraries {
		path := vendor.SourcePath(root, lib)
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read vendored library %s: %w", lib.Name, err)
		}
		out = append(out, src...)
		out = append(out, '\n')
	}
	entry, err := os.ReadFile(m.EntryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %s: %w", m.EntryPath(), err)
	}
	return append(out, entry...), nil
}

func execute(src []byte, out io.Writer) error {
	program, err := parser.Parse(src)
	if err != nil {
		return err
	}
	interp := interpreter.New()
	ctx := runtime.NewStreamContext(out)
	_, err = interp.Run(program, ctx)
	return err
}

func printTokens(src []byte, out io.Writer) error {
	lx, err := lexer.New(src)
	if err != nil {
		return err
	}
	for {
		tok := lx.Current()
		fmt.Fprintln(out, tok)
		if tok.Kind == token.Eof {
			return nil
		}
		if _, err := lx.Advance(); err != nil {
			return err
		}
	}
}

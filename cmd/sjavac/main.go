package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sjava-lang/sjavac/internal/checker"
	"github.com/sjava-lang/sjavac/internal/chunk"
)

const usage = `sjavac - S-Java static verifier

Usage:
  sjavac <file.sjava>           Verify a single S-Java file
  sjavac chunks <file.sjava>    Verify each //!START_CHUNK section separately

The verdict is printed on stdout and used as the exit code:
  0   the file is a legal S-Java program
  1   the file violates an S-Java rule (details on stderr)
  2   usage or IO error
`

const (
	codeValid   = 0
	codeInvalid = 1
	codeError   = 2
)

const sjavaExtension = ".sjava"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch {
	case len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h"):
		fmt.Print(usage)
		return codeValid
	case len(args) == 1:
		return verifyFile(args[0])
	case len(args) == 2 && args[0] == "chunks":
		return verifyChunks(args[1])
	default:
		fmt.Fprintln(os.Stderr, "Error: wrong number of arguments")
		fmt.Fprint(os.Stderr, usage)
		fmt.Println(codeError)
		return codeError
	}
}

func verifyFile(path string) int {
	lines, code := readSource(path)
	if code != codeValid {
		fmt.Println(code)
		return code
	}

	diag := checker.CheckLines(lines)
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, diag.Format(path))
		fmt.Println(codeInvalid)
		return codeInvalid
	}

	fmt.Println(codeValid)
	return codeValid
}

func verifyChunks(path string) int {
	lines, code := readSource(path)
	if code != codeValid {
		fmt.Println(code)
		return code
	}

	chunks := chunk.Split(lines)
	if len(chunks) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no chunks found in", path)
		return codeError
	}

	worst := codeValid
	for _, ch := range chunks {
		diag := checker.CheckLines(ch.Lines)
		if diag.HasErrors() {
			fmt.Printf("%s: %d\n", ch.Name, codeInvalid)
			fmt.Fprintln(os.Stderr, diag.Format(path+"#"+ch.Name))
			worst = codeInvalid
		} else {
			fmt.Printf("%s: %d\n", ch.Name, codeValid)
		}
	}
	return worst
}

// readSource enforces the .sjava extension and reads the file as an ordered
// line sequence.
func readSource(path string) ([]string, int) {
	if !strings.HasSuffix(path, sjavaExtension) {
		fmt.Fprintf(os.Stderr, "Error: file must end with %s\n", sjavaExtension)
		return nil, codeError
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		return nil, codeError
	}

	normalized := strings.ReplaceAll(string(source), "\r\n", "\n")
	return strings.Split(normalized, "\n"), codeValid
}

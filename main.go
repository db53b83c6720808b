package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/elliotnunn/huff/internal/decompressioncache"
)

const usage = `usage:
	huff compress IN OUT
	huff decompress IN OUT
	huff info FILE
	huff cat FILE [OFFSET [LENGTH]]
IN or FILE may be "-" for stdin, except when compressing.
`

var errUsage = errors.New("usage")

func main() {
	if os.Getenv("HUFFLOG") == "debug" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	decompressioncache.SetLimit(memLimit)

	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "huff:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch cmd, args := args[0], args[1:]; {
	case cmd == "compress" && len(args) == 2:
		return compressCmd(args[0], args[1])
	case cmd == "decompress" && len(args) == 2:
		return decompressCmd(args[0], args[1])
	case cmd == "info" && len(args) == 1:
		return infoCmd(args[0], stdout)
	case cmd == "cat" && len(args) >= 1 && len(args) <= 3:
		return catCmd(args[0], args[1:], stdout)
	}
	return errUsage
}

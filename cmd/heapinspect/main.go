package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/heapinspect/catalog"
	"github.com/wippyai/heapinspect/memory"
	"github.com/wippyai/heapinspect/object"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Session TOML file with [layout] and [[type]] tables")
		imageFile   = flag.String("image", "", "Memory image (CBOR snapshot)")
		addrStr     = flag.String("addr", "", "Object address (hex with 0x prefix, or decimal)")
		path        = flag.String("path", "", "Dotted field path to read (optional)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *configFile == "" || *imageFile == "" || *addrStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: heapinspect -config <session.toml> -image <heap.cbor> -addr <address> [-path a.b.c]")
		fmt.Fprintln(os.Stderr, "       heapinspect -config <session.toml> -image <heap.cbor> -addr <address> -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	memory.SetLogger(log)
	catalog.SetLogger(log)
	object.SetLogger(log)

	heap, err := openSession(*configFile, *imageFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	addr, err := parseAddress(*addrStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(heap, addr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, heap, addr, *path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

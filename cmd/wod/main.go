// Command wod writes workout notation into a markdown training log.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// No command, or flags only: create the log file or run a batch.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		os.Exit(handleCreate(os.Args[1:], log))
	}

	var code int
	switch os.Args[1] {
	case "add":
		code = handleAdd(os.Args[2:], log)
	case "check":
		code = handleCheck(os.Args[2:])
	case "list":
		code = handleList(os.Args[2:])
	case "history":
		code = handleHistory(os.Args[2:], log)
	case "version":
		fmt.Println("wod", Version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		code = 1
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Print(`wod - workout notation to markdown

USAGE:
  wod [-f file.md] [-force] [-date YYYY-MM-DD] [-languages en,es]
      Create the log file(s) with front matter.
  wod -wodfile batch.wod [-f file.md] [-date YYYY-MM-DD] [-languages en,es]
      Append every line of a batch file ("notation|comments|name").
  wod add [-f file.md] [-comments text] [-name name] "<notation>"
      Append one workout.
  wod check "<notation>"
      Print the rendered markdown without writing anything.
  wod list [-page n]
      Show the movement catalog.
  wod history [-n 10]
      Show recently processed batch files.

Every command accepts -config path/to/config.yaml for output defaults.

EXAMPLES:
  wod add -name Fran "ft 21-15-9 pull up, thruster @43/30kg"
  wod check "emom-12-3m-r1m 15cal row, 12 t2b"
  wod -wodfile week12.wod -languages en,es
`)
}

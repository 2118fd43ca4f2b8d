package main

import (
	"context"
	"fmt"
	"os"

	"github.com/CountESS-Project/countess-release/internal/config"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	versionInfo := config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	app := NewDefaultApp(versionInfo)

	if err := app.Config.ParseFlags(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
		app.exit(1)
	}

	// The procedure is one-shot and runs to completion or halts on the
	// first error; no interrupt handling beyond the runtime default.
	if err := app.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
		_ = app.Close()
		app.exit(ExitCodeFor(err))
	}

	_ = app.Close()
}

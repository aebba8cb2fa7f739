package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/glucoffee/internal/cli"
)

func main() {
	app := &cli.App{}
	w := &wiring{app: app}
	app.Init = w.init
	app.Close = w.close
	app.ResolveUser = w.resolveUser

	// Detect interactive terminal for form-driven input.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorMessage(err))
		w.close()
		os.Exit(1)
	}
}

// Interactive console: every entered line goes to the LCD, oldest
// lines scroll off the top.
package main

import (
	"flag"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/charlcd/hardware/hd44780"
	"github.com/temoto/charlcd/helpers/cli"
	"github.com/temoto/charlcd/log2"
	"github.com/temoto/charlcd/state"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "charlcd.hcl", "")
	flagDebug := cmdline.Bool("debug", false, "trace every render")
	cmdline.Parse(os.Args[1:]) //nolint:errcheck

	log.SetFlags(log2.LInteractiveFlags)
	if *flagDebug {
		log.SetLevel(log2.LDebug)
	}

	config := state.MustReadConfigFile(log, *flagConfig)
	hw := &config.Hardware.HD44780
	dev, err := hd44780.Open(hw.PinChip, hw.Pinmap, config.Geometry())
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	dev.Log = log
	defer dev.Close()

	lines := []string{"Welcome..."}
	render := func() { dev.Render(strings.Join(lines, "\n")) }
	render()

	maxLines := config.Geometry().Lines()
	cli.MainLoop("charlcd", func(line string) {
		switch line {
		case "":
			return
		case "/quit", "/exit":
			os.Exit(0)
		case "/clear":
			lines = lines[:0]
			dev.Clear()
			return
		}
		lines = append(lines, line)
		if len(lines) > maxLines {
			lines = lines[len(lines)-maxLines:]
		}
		render()
	}, completer)
}

func completer(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "/clear", Description: "blank the display"},
		{Text: "/quit", Description: "exit"},
	}
	return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
}

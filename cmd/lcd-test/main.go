// Hardware smoke test: cycles fixed patterns through the text display
// layer, exercises codepage translation, scroll and clear.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/charlcd/hardware/hd44780"
	"github.com/temoto/charlcd/hardware/text_display"
	"github.com/temoto/charlcd/log2"
	"github.com/temoto/charlcd/state"
)

var _ text_display.Devicer = (*hd44780.Device)(nil)

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "charlcd.hcl", "")
	cmdline.Parse(os.Args[1:]) //nolint:errcheck
	log.SetFlags(log2.LInteractiveFlags)

	config := state.MustReadConfigFile(log, *flagConfig)
	hw := &config.Hardware.HD44780
	dev, err := hd44780.Open(hw.PinChip, hw.Pinmap, config.Geometry())
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	dev.Log = log
	defer dev.Close()

	display, err := text_display.NewTextDisplay(&text_display.TextDisplayConfig{
		Codepage:    hw.Codepage,
		ScrollDelay: config.ScrollDelay(),
		Width:       uint32(hw.Width),
		Lines:       config.Geometry().Lines(),
	})
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	display.SetDevice(dev)
	go display.Run()
	defer display.Stop()

	for {
		display.SetLines("charlcd test", time.Now().Format("15:04:05"))
		time.Sleep(2 * time.Second)

		display.Message([]string{"message", "overlay"}, func() {
			time.Sleep(2 * time.Second)
		})

		display.SetLine(0, "this line is longer than the display and should scroll")
		time.Sleep(5 * time.Second)

		display.Clear()
		time.Sleep(1 * time.Second)
	}
}

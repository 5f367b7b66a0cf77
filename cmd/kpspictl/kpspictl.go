//go:build linux

// A utility to drive a KP2000 SPI controller from the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edaniels/golog"
	"github.com/spf13/cobra"

	"kpspi/core"
	"kpspi/mmio"
	"kpspi/uartbus"
)

var rootCmd = &cobra.Command{
	Use:   "kpspictl",
	Short: "kpspictl is a utility to drive a KP2000 SPI controller",
	Long: "kpspictl drives the KP2000 memory-mapped SPI controller, either " +
		"through a mapped BAR window or through a UART register bridge.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var rootOpts = struct {
	Bar    string
	Offset int64
	UART   string
	Baud   int
}{}

var logger = golog.NewDevelopmentLogger("kpspictl")

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.Bar, "bar", "", "path to the BAR resource file holding the register window")
	rootCmd.PersistentFlags().Int64Var(&rootOpts.Offset, "offset", 0, "byte offset of the register window inside the BAR")
	rootCmd.PersistentFlags().StringVar(&rootOpts.UART, "uart", "", "serial device of a UART register bridge (instead of --bar)")
	rootCmd.PersistentFlags().IntVar(&rootOpts.Baud, "baud", 115200, "baud rate for --uart")
}

// windowSize covers the controller's five 64-bit registers.
const windowSize = 5 * 8

func openBus() (core.RegisterBus, io.Closer, error) {
	switch {
	case rootOpts.UART != "":
		b, err := uartbus.Open(rootOpts.UART, rootOpts.Baud, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	case rootOpts.Bar != "":
		w, err := mmio.Map(rootOpts.Bar, rootOpts.Offset, windowSize)
		if err != nil {
			return nil, nil, err
		}
		return w, w, nil
	}
	return nil, nil, errors.New("one of --bar or --uart is required")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

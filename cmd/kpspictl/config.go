//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kpspi/core"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Decode the controller Config register",
	RunE:  config,
}

func config(cmd *cobra.Command, args []string) error {
	bus, closer, err := openBus()
	if err != nil {
		return err
	}
	defer closer.Close()

	c := core.ConfigReg(bus.Read(core.RegConfig))
	fmt.Printf("config: %#08x\n", uint32(c))
	fmt.Printf("  phase:         %v\n", c.Phase())
	fmt.Printf("  polarity:      %v\n", c.Polarity())
	fmt.Printf("  cs-polarity:   %v\n", c.CSPolarity())
	fmt.Printf("  tx-enable:     %v\n", c.TxEnable())
	fmt.Printf("  word-length:   %d\n", c.WordLength())
	fmt.Printf("  transfer-mode: %d\n", c.TransferMode())
	fmt.Printf("  chip-select:   %d\n", c.ChipSelect())
	fmt.Printf("  word-count:    %d\n", c.WordCount())
	fmt.Printf("  fifo-enable:   %v\n", c.FIFOEnable())
	fmt.Printf("  spi-enable:    %v\n", c.SPIEnable())
	return nil
}

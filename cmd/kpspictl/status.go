//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kpspi/core"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Decode the controller Status register",
	RunE:  status,
}

func status(cmd *cobra.Command, args []string) error {
	bus, closer, err := openBus()
	if err != nil {
		return err
	}
	defer closer.Close()

	s := core.StatusReg(bus.Read(core.RegStatus))
	fmt.Printf("status: %#02x\n", uint32(s))
	fmt.Printf("  rx-ready:        %v\n", s.RxReady())
	fmt.Printf("  tx-ready:        %v\n", s.TxReady())
	fmt.Printf("  end-of-transfer: %v\n", s.EndOfTransfer())
	fmt.Printf("  tx-fifo-empty:   %v\n", s.TxFIFOEmpty())
	fmt.Printf("  tx-fifo-full:    %v\n", s.TxFIFOFull())
	fmt.Printf("  rx-fifo-empty:   %v\n", s.RxFIFOEmpty())
	fmt.Printf("  rx-fifo-full:    %v\n", s.RxFIFOFull())
	return nil
}

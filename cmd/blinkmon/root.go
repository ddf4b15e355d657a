//go:build !tinygo

package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"blinky-go/errcode"
)

func newRootCmd() *cobra.Command {
	var (
		port string
		baud int
	)
	root := &cobra.Command{
		Use:          "blinkmon",
		Short:        "Follow a board's blink trace over serial",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				return errcode.Wrap(errcode.InvalidParams, "blinkmon", "--port is required", nil)
			}
			p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
			if err != nil {
				return errcode.Wrap(errcode.Error, "open", port, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				p.Close()
			}()

			log := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("port", port)
			m := &Monitor{log: log}
			err = m.Follow(p)
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	root.Flags().StringVarP(&port, "port", "p", "", "serial device, e.g. /dev/ttyUSB0")
	root.Flags().IntVarP(&baud, "baud", "b", 115200, "baud rate")
	root.AddCommand(newPortsCmd())
	return root
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := serial.GetPortsList()
			if err != nil {
				return err
			}
			return printPorts(cmd.OutOrStdout(), ports)
		},
	}
}

func printPorts(w io.Writer, ports []string) error {
	if len(ports) == 0 {
		_, err := io.WriteString(w, "no serial ports found\n")
		return err
	}
	for _, p := range ports {
		if _, err := io.WriteString(w, p+"\n"); err != nil {
			return err
		}
	}
	return nil
}

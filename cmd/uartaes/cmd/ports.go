package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-uartaes/serialport"
)

var portsJSON bool

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Long: `List the serial ports found on this system with their USB details.

Examples:
  uartaes ports
  uartaes ports --json`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)

	portsCmd.Flags().BoolVar(&portsJSON, "json", false, "print the port list as JSON")
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := serialport.List()
	if err != nil {
		return fmt.Errorf("failed to list serial ports: %w", err)
	}

	out := cmd.OutOrStdout()
	if portsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ports)
	}

	if len(ports) == 0 {
		fmt.Fprintln(out, "No serial ports found")
		return nil
	}

	for _, p := range ports {
		if p.IsUSB {
			fmt.Fprintf(out, "%s  USB %s:%s", p.Name, p.VID, p.PID)
			if p.SerialNumber != "" {
				fmt.Fprintf(out, "  serial %s", p.SerialNumber)
			}
			if p.Product != "" {
				fmt.Fprintf(out, "  %s", p.Product)
			}
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintln(out, p.Name)
	}
	return nil
}

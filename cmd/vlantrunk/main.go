// Package main provides the vlantrunk command-line client.
//
// vlantrunk queries and changes VLAN trunks on the switch ports (uplinks)
// of bare-metal servers through the provider's REST API.
package main

import (
	"fmt"
	"os"

	"github.com/yaroslav/vlantrunk/cmd/vlantrunk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaroslav/vlantrunk/models"
	"github.com/yaroslav/vlantrunk/pkg/table"
)

// render prints t to the command's stdout as a table, or as JSON with --json.
func render(cmd *cobra.Command, t *table.Table) error {
	if jsonOutput {
		return t.WriteJSON(cmd.OutOrStdout())
	}
	return t.Write(cmd.OutOrStdout())
}

func vlanTable(vlans []models.VLAN) *table.Table {
	t := table.New("id", "vlan", "name")
	for _, v := range vlans {
		t.AddRow(v.ID, v.VLANNumber, v.Name)
	}
	return t
}

// interfacesCell lists a server's interfaces as "eth0=10.0.0.1 eth1"; an
// interface without a primary IP shows only its name.
func interfacesCell(hw models.Hardware) string {
	parts := make([]string, 0, len(hw.NetworkComponents))
	for _, nic := range hw.NetworkComponents {
		if nic.PrimaryIPAddress == "" {
			parts = append(parts, nic.InterfaceName())
			continue
		}
		parts = append(parts, nic.InterfaceName()+"="+nic.PrimaryIPAddress)
	}
	return strings.Join(parts, " ")
}

// splitList splits a comma-separated flag or argument, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yaroslav/vlantrunk/pkg/table"
)

var getVLANCmd = &cobra.Command{
	Use:   "get_vlan <identifier>",
	Short: "Show the native VLAN of an interface",
	Long: `Show the VLAN the interface's uplink is provisioned on.

identifier is an IP address, FQDN,eth<N> or FQDN,<vlan-name>.`,
	Args: cobra.ExactArgs(1),
	RunE: runGetVLAN,
}

func init() {
	rootCmd.AddCommand(getVLANCmd)
}

func runGetVLAN(cmd *cobra.Command, args []string) error {
	ctx, cancel, svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	resolved, vlan, err := svc.GetVLAN(ctx, args[0])
	if err != nil {
		return err
	}

	t := table.New("interface", "id", "vlan", "name")
	t.AddRow(resolved.Component.InterfaceName(), vlan.ID, vlan.VLANNumber, vlan.Name)
	return render(cmd, t)
}

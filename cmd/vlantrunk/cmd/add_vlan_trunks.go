package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaroslav/vlantrunk/models"
)

var addVLANTrunksCmd = &cobra.Command{
	Use:   "add_vlan_trunks <identifier> <vlan1,vlan2,...>",
	Short: "Trunk VLANs onto an interface's uplink",
	Long: `Trunk the named VLANs onto the interface's uplink and print the
resulting trunks.

Every VLAN name is checked before anything changes. The VLANs are then
added one call at a time, in the order given. If a call fails, the VLANs
already added stay trunked and the error lists them.`,
	Args: cobra.ExactArgs(2),
	RunE: runAddVLANTrunks,
}

func init() {
	rootCmd.AddCommand(addVLANTrunksCmd)
}

func runAddVLANTrunks(cmd *cobra.Command, args []string) error {
	names := splitList(args[1])
	if len(names) == 0 {
		return fmt.Errorf("%w: no vlan names given", models.ErrVLANNotFound)
	}

	ctx, cancel, svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	vlans, err := svc.AddVLANTrunks(ctx, args[0], names)
	if err != nil {
		return err
	}
	return render(cmd, vlanTable(vlans))
}

package cmd

import "github.com/spf13/cobra"

var getVLANTrunksCmd = &cobra.Command{
	Use:   "get_vlan_trunks <identifier>",
	Short: "Show the VLANs trunked on an interface's uplink",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetVLANTrunks,
}

func init() {
	rootCmd.AddCommand(getVLANTrunksCmd)
}

func runGetVLANTrunks(cmd *cobra.Command, args []string) error {
	ctx, cancel, svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	vlans, err := svc.GetVLANTrunks(ctx, args[0])
	if err != nil {
		return err
	}
	return render(cmd, vlanTable(vlans))
}

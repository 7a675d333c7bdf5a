package cmd

import "github.com/spf13/cobra"

var clearVLANTrunksCmd = &cobra.Command{
	Use:   "clear_vlan_trunks <identifier>",
	Short: "Remove every VLAN trunk from an interface's uplink",
	Args:  cobra.ExactArgs(1),
	RunE:  runClearVLANTrunks,
}

func init() {
	rootCmd.AddCommand(clearVLANTrunksCmd)
}

func runClearVLANTrunks(cmd *cobra.Command, args []string) error {
	ctx, cancel, svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	return svc.ClearVLANTrunks(ctx, args[0])
}

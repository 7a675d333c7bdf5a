package cmd

import "github.com/spf13/cobra"

var listVLANsCmd = &cobra.Command{
	Use:   "list_vlans",
	Short: "List the account's VLANs",
	Args:  cobra.NoArgs,
	RunE:  runListVLANs,
}

func init() {
	rootCmd.AddCommand(listVLANsCmd)
}

func runListVLANs(cmd *cobra.Command, args []string) error {
	ctx, cancel, svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	vlans, err := svc.ListVLANs(ctx)
	if err != nil {
		return err
	}
	return render(cmd, vlanTable(vlans))
}

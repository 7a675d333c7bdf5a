package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yaroslav/vlantrunk/internal/trunk"
	"github.com/yaroslav/vlantrunk/pkg/table"
)

var (
	hardwareDomain         string
	hardwareHostnames      string
	hardwareHostnamePrefix string
)

var listHardwareCmd = &cobra.Command{
	Use:   "list_hardware",
	Short: "List bare-metal servers and their interfaces",
	Long: `List every bare-metal server on the account with its interfaces and
their primary IPs. Filters combine: a server must pass all of them.`,
	Args: cobra.NoArgs,
	RunE: runListHardware,
}

func init() {
	rootCmd.AddCommand(listHardwareCmd)

	listHardwareCmd.Flags().StringVar(&hardwareDomain, "domain", "", "Only servers in this domain")
	listHardwareCmd.Flags().StringVar(&hardwareHostnames, "hostnames", "", "Only these hostnames (comma-separated)")
	listHardwareCmd.Flags().StringVar(&hardwareHostnamePrefix, "hostname-prefix", "", "Only hostnames starting with this prefix")
}

func runListHardware(cmd *cobra.Command, args []string) error {
	ctx, cancel, svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	hardware, err := svc.ListHardware(ctx, trunk.Filter{
		Domain:         hardwareDomain,
		Hostnames:      splitList(hardwareHostnames),
		HostnamePrefix: hardwareHostnamePrefix,
	})
	if err != nil {
		return err
	}

	t := table.New("id", "hostname", "domain", "fqdn", "interfaces")
	for _, hw := range hardware {
		t.AddRow(hw.ID, hw.Hostname, hw.Domain, hw.FullyQualifiedDomainName, interfacesCell(hw))
	}
	return render(cmd, t)
}

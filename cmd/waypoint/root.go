package main

import (
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/waypoint/ranger"
)

const (
	configFlag  = "config"
	debugFlag   = "debug"
	hostFlag    = "host"
	portFlag    = "port"
	variantFlag = "variant"
)

// newRootCmd constructs the command running the web server until it receives a shutdown signal.
// Flags override the matching environment variables.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "waypoint [flags]",
		Short:        "Serve the waypoint homepage",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path, _ := cmd.Flags().GetString(configFlag); path != "" {
				if err := ranger.LoadFile(path); err != nil {
					return err
				}
			}

			rng, err := ranger.New(options(cmd)...)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().StringP(configFlag, "c", "", "YAML file filling in unset environment variables (CONFIG_FILE)")
	cmd.Flags().Bool(debugFlag, false, "log at debug and reload templates on every request (DEBUG)")
	cmd.Flags().String(hostFlag, ranger.DefaultHost, "host to listen on (HOST)")
	cmd.Flags().StringP(portFlag, "p", ranger.DefaultPort, "port to listen on (PORT)")
	cmd.Flags().String(variantFlag, ranger.DefaultVariant.String(), "homepage to render: plain or tasks (VARIANT)")

	return cmd
}

// options converts the flags set on cmd into RangerOptions.
// Flags left unset leave the environment in charge.
func options(cmd *cobra.Command) []ranger.RangerOption {
	var opts []ranger.RangerOption
	flags := cmd.Flags()

	if flags.Changed(debugFlag) {
		debug, _ := flags.GetBool(debugFlag)
		opts = append(opts, ranger.WithDebug(debug))
	}

	if flags.Changed(hostFlag) {
		host, _ := flags.GetString(hostFlag)
		opts = append(opts, ranger.WithHost(host))
	}

	if flags.Changed(portFlag) {
		port, _ := flags.GetString(portFlag)
		opts = append(opts, ranger.WithPort(port))
	}

	if flags.Changed(variantFlag) {
		variant, _ := flags.GetString(variantFlag)
		opts = append(opts, ranger.WithVariant(variant))
	}

	return opts
}

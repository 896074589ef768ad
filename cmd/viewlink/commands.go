package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jsamuelsen/viewlink/internal/domain"
	"github.com/jsamuelsen/viewlink/internal/ports"
)

// paramsFlag collects repeated --param key=value flags in order.
type paramsFlag struct {
	params domain.Params
}

var _ pflag.Value = (*paramsFlag)(nil)

func (f *paramsFlag) String() string {
	pairs := make([]string, 0, len(f.params))
	for _, p := range f.params {
		pairs = append(pairs, fmt.Sprintf("%s=%v", p.Key, p.Value))
	}

	return strings.Join(pairs, ",")
}

func (f *paramsFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}

	f.params = f.params.Add(key, val)

	return nil
}

func (f *paramsFlag) Type() string {
	return "key=value"
}

// value returns nil when no param was given so the link has no query string.
func (f *paramsFlag) value() any {
	if len(f.params) == 0 {
		return nil
	}

	return f.params
}

func addParamsFlag(cmd *cobra.Command) *paramsFlag {
	params := &paramsFlag{}
	cmd.Flags().VarP(params, "param", "q", "query parameter, may be repeated")

	return params
}

func newBrowseCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <service> <entity>",
		Short: "Print the browse link of an entity",
		Args:  cobra.ExactArgs(2),
	}

	params := addParamsFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		link, err := c.svc.Browse(cmd.Context(), args[0], args[1], params.value())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), link)

		return nil
	}

	return cmd
}

func newEditCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <service> <entity> <id>",
		Short: "Print the edit link of an entity record",
		Args:  cobra.ExactArgs(3),
	}

	params := addParamsFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		link, err := c.svc.Edit(cmd.Context(), args[0], args[1], args[2], params.value())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), link)

		return nil
	}

	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <entry>...",
		Short: "Print a link made of arbitrary path entries",
		Args:  cobra.ArbitraryArgs,
	}

	params := addParamsFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		link, err := c.svc.Get(cmd.Context(), args, params.value())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), link)

		return nil
	}

	return cmd
}

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the host of every configured stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			report, err := c.svc.CheckHosts(ctx)
			if err != nil {
				return err
			}

			for _, name := range report.Names() {
				result := report.Checks[name]
				if result.Status == ports.CheckStatusOK {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s ok\n", name)
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%-12s failed: %s\n", name, result.Message)
			}

			host, err := c.svc.Host(ctx)
			if err != nil {
				return err
			}

			stage, _ := c.svc.Stage()
			fmt.Fprintf(cmd.OutOrStdout(), "current stage %s: %s\n", stage, host)

			if report.Status != ports.CheckStatusOK {
				return fmt.Errorf("host check %s", report.Status)
			}

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "viewlink %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/go-cfb/cfb"
	"github.com/go-cfb/cfb/propset"
	"github.com/spf13/cobra"
)

func DefinePropsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "props <file> <stream>",
		Short:        "Print a decoded OLE property set (e.g. \\x05SummaryInformation)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunProps,
	}
	cmd.Flags().Bool("bug-compatible-dates", false, "reproduce the legacy VT_DATE decode bug instead of decoding correctly")
	return cmd
}

func RunProps(cmd *cobra.Command, args []string) error {
	bugCompat, _ := cmd.Flags().GetBool("bug-compatible-dates")
	propset.BugCompatibleDates = bugCompat

	rd, err := cfb.OpenFile(args[0])
	if err != nil {
		return err
	}
	defer rd.Close()

	entry, err := resolvePath(rd, args[1])
	if err != nil {
		return err
	}
	if entry.Properties == nil {
		return fmt.Errorf("%q is not a decodable OLE property set", args[1])
	}

	printSet(cmd, entry.Properties, 0)
	return nil
}

func printSet(cmd *cobra.Command, ps *propset.PropertySet, depth int) {
	out := cmd.OutOrStdout()
	for _, item := range ps.Items {
		name := propset.PIDName(item.ID)
		if name == "" {
			name = fmt.Sprintf("PID_%d", item.ID)
		}
		fmt.Fprintf(out, "%s = %v\n", name, item.Value)
	}
	if ps.Section2 != nil {
		fmt.Fprintln(out, "--- section 2 ---")
		printSet(cmd, ps.Section2, depth+1)
	}
}

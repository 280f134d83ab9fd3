package cmd

import (
	"fmt"

	"github.com/go-cfb/cfb"
	cfbdir "github.com/go-cfb/cfb/directory"
	"github.com/spf13/cobra"
)

func DefineListCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "list <file>",
		Short:        "List every storage and stream in a CFB container",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunList,
	}
}

func RunList(cmd *cobra.Command, args []string) error {
	rd, err := cfb.OpenFile(args[0])
	if err != nil {
		return err
	}
	defer rd.Close()

	walk(cmd, rd.Root(), "")
	return nil
}

func walk(cmd *cobra.Command, e *cfb.Entry, prefix string) {
	for _, c := range e.Children() {
		path := prefix + "/" + c.Name
		kind := "stream"
		if c.Type == cfbdir.Storage {
			kind = "storage"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %10d  %s\n", kind, c.Size, path)
		if c.Type == cfbdir.Storage {
			walk(cmd, c, path)
		}
	}
}

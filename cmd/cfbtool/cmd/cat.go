package cmd

import (
	"io"

	"github.com/go-cfb/cfb"
	"github.com/spf13/cobra"
)

func DefineCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "cat <file> <stream>",
		Short:        "Write a stream's reconstructed bytes to stdout",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunCat,
	}
}

func RunCat(cmd *cobra.Command, args []string) error {
	rd, err := cfb.OpenFile(args[0])
	if err != nil {
		return err
	}
	defer rd.Close()

	entry, err := resolvePath(rd, args[1])
	if err != nil {
		return err
	}

	r, err := rd.Stream(entry)
	if err != nil {
		return err
	}
	_, err = io.Copy(cmd.OutOrStdout(), r)
	return err
}

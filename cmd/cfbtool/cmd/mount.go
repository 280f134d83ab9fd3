package cmd

import (
	"github.com/go-cfb/cfb"
	"github.com/go-cfb/cfb/internal/fuse"
	"github.com/go-cfb/cfb/internal/logger"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "mount <file> <mountpoint>",
		Short:        "Mount a CFB container's storage/stream tree read-only (Linux only)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunMount,
	}
}

func RunMount(cmd *cobra.Command, args []string) error {
	rd, err := cfb.OpenFile(args[0])
	if err != nil {
		return err
	}
	defer rd.Close()

	log := logger.New(cmd.OutOrStdout(), logger.InfoLevel)
	log.Infof("mounting %s at %s", args[0], args[1])

	if err := fuse.Mount(args[1], rd); err != nil {
		return err
	}
	log.Info("unmounted")
	return nil
}

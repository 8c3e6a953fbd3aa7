package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stego "github.com/yyyoichi/stride_stego"
)

func newCapacityCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <carrier>",
		Short: "Print how many payload bytes a carrier can hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.codecOptions()
			if err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			s, err := stego.New(opts...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, s.Capacity(int(info.Size())))
			return err
		},
	}
}

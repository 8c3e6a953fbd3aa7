package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stego "github.com/yyyoichi/stride_stego"
	"github.com/yyyoichi/stride_stego/mark"
)

func newExtractCommand(a *app) *cobra.Command {
	var (
		carrierPath string
		outPath     string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Recover a message from a carrier file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.codecOptions()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(carrierPath)
			if err != nil {
				return err
			}
			dec, err := stego.Extract(data, mark.NewExtract(a.framing()), opts...)
			if err != nil {
				return err
			}
			payload := dec.DecodeToBytes()
			if err := writeOutput(a, outPath, payload); err != nil {
				return err
			}
			a.log.Debug("message extracted", zap.String("carrier", carrierPath), zap.Int("payload_bytes", len(payload)))
			return nil
		},
	}
	cmd.Flags().StringVar(&carrierPath, "carrier", "", "carrier file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("carrier")
	return cmd
}

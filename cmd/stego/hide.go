package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stego "github.com/yyyoichi/stride_stego"
	"github.com/yyyoichi/stride_stego/carrier"
	"github.com/yyyoichi/stride_stego/mark"
)

func newHideCommand(a *app) *cobra.Command {
	var (
		carrierPath string
		messagePath string
		text        string
		outPath     string
		normalize   bool
	)
	cmd := &cobra.Command{
		Use:   "hide",
		Short: "Embed a message into a carrier file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (messagePath == "") == (text == "") {
				return errors.New("exactly one of --message or --text is required")
			}
			opts, err := a.codecOptions()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(carrierPath)
			if err != nil {
				return err
			}
			payload := []byte(text)
			if messagePath != "" {
				if payload, err = os.ReadFile(messagePath); err != nil {
					return err
				}
			}

			if normalize {
				kind, err := carrier.Validate(carrierPath, data, 0)
				if err != nil {
					return err
				}
				if data, _, err = carrier.ForKind(kind, carrier.DefaultMaxWidth, carrier.DefaultMaxHeight).Prepare(data, carrier.Ext(carrierPath)); err != nil {
					return err
				}
			}

			s, err := stego.New(opts...)
			if err != nil {
				return err
			}
			m := mark.NewBytes(payload, a.framing())
			if err := s.Embed(data, m); err != nil {
				if errors.Is(err, stego.ErrCapacityExceeded) {
					return fmt.Errorf("%w (carrier holds at most %d bytes with these parameters)", err, s.Capacity(len(data)))
				}
				return err
			}
			if err := writeOutput(a, outPath, data); err != nil {
				return err
			}
			a.log.Info("message hidden",
				zap.String("carrier", carrierPath),
				zap.String("out", outPath),
				zap.Int("payload_bytes", m.Size()),
				zap.Int("embedded_bits", m.Len()+8),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&carrierPath, "carrier", "", "carrier file (required)")
	cmd.Flags().StringVar(&messagePath, "message", "", "file to hide")
	cmd.Flags().StringVar(&text, "text", "", "text to hide")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, - for stdout (required)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "validate the carrier and re-encode images as PNG before hiding")
	_ = cmd.MarkFlagRequired("carrier")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func writeOutput(a *app, path string, data []byte) error {
	if path == "-" {
		_, err := a.out.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

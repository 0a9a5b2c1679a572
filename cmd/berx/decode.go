package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/metrics"
)

type decodeFlags struct {
	protocol string
	typeName string
	hexInput string
	file     string
	offset   int
	output   string
	metrics  bool
}

func newDecodeCmd(a *app) *cobra.Command {
	f := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode one message",
		Long: `Decode one BER-encoded message of a protocol or of a single registered type.

The input is given as hex (--hex) or read from a file (--file, "-" for stdin).
The exit code is 2 when the message is malformed.`,
		Example: `  berx decode --protocol ldap --hex 300c020101600702010304008000
  berx decode --protocol 2.5.3.1 --file invoke.ber --output json
  berx decode --type ldap.Filter --hex a7020000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.decode(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.protocol, "protocol", "p", "ldap", "Protocol name or application context OID")
	flags.StringVarP(&f.typeName, "type", "t", "", "Decode a registered type instead of a protocol message")
	flags.StringVar(&f.hexInput, "hex", "", "Input as hex; spaces and colons are ignored")
	flags.StringVarP(&f.file, "file", "f", "", "Read raw input from a file, - for stdin")
	flags.IntVar(&f.offset, "offset", 0, "Start offset within the input")
	flags.StringVarP(&f.output, "output", "o", "tree", "Output format: tree|json")
	flags.BoolVar(&f.metrics, "metrics", false, "Print decode metrics after the result")
	cmd.MarkFlagsMutuallyExclusive("hex", "file")
	cmd.MarkFlagsOneRequired("hex", "file")
	return cmd
}

func (a *app) decode(cmd *cobra.Command, f *decodeFlags) error {
	if f.output != "tree" && f.output != "json" {
		return fmt.Errorf("unknown output format %q", f.output)
	}

	data, err := readInput(cmd.InOrStdin(), f)
	if err != nil {
		return err
	}
	if f.offset < 0 || f.offset > len(data) {
		return fmt.Errorf("offset %d outside input of %d bytes", f.offset, len(data))
	}

	d, err := a.dissector()
	if err != nil {
		return err
	}

	label := f.protocol
	var res *codec.Result
	if f.typeName != "" {
		label = f.typeName
		if res, err = d.DecodeType(f.typeName, data, f.offset); err != nil {
			return err
		}
	} else {
		res = d.Decode(f.protocol, data, f.offset)
	}

	w := cmd.OutOrStdout()
	if f.output == "json" {
		err = writeJSON(w, label, res)
	} else {
		err = writeTree(w, label, res)
	}
	if err != nil {
		return err
	}

	if f.metrics {
		if err := writeMetrics(w, d.Metrics()); err != nil {
			return err
		}
	}

	if res.Malformed() {
		return errMalformed
	}
	return nil
}

func readInput(stdin io.Reader, f *decodeFlags) ([]byte, error) {
	if f.hexInput != "" {
		return parseHex(f.hexInput)
	}
	if f.file == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// parseHex accepts hex with optional whitespace, colons and a 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

func writeMetrics(w io.Writer, r *metrics.Recorder) error {
	if r == nil {
		_, err := fmt.Fprintln(w, "metrics are disabled")
		return err
	}
	samples, err := r.Samples()
	if err != nil {
		return err
	}
	return writeSamples(w, samples)
}

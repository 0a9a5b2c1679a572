package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/berx/internal/rose"
)

func newProtocolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "protocols [name|oid]",
		Short: "List registered protocols",
		Long: `List the registered protocols with their application context OIDs.

With an argument, list the operations and errors of that protocol.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dissector()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				for _, p := range d.Protocols() {
					if p.Name() == args[0] || p.ContextOID() == args[0] {
						return writeProtocol(cmd, p)
					}
				}
				return fmt.Errorf("unknown protocol %q", args[0])
			}

			data := pterm.TableData{{"Name", "Context", "Operations", "Errors"}}
			for _, p := range d.Protocols() {
				data = append(data, []string{
					p.Name(),
					p.ContextOID(),
					fmt.Sprint(p.Operations().Len()),
					fmt.Sprint(p.Errors().Len()),
				})
			}
			out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func writeProtocol(cmd *cobra.Command, p *rose.Protocol) error {
	data := pterm.TableData{{"Kind", "Code", "Name", "Argument", "Result"}}
	for _, op := range p.Operations().Operations() {
		data = append(data, []string{"operation", op.Identifier().String(), op.Name, typeName(op.Argument), typeName(op.Result)})
	}
	for _, e := range p.Errors().Errors() {
		data = append(data, []string{"error", e.Identifier().String(), e.Name, typeName(e.Parameter), ""})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", p.Name(), p.ContextOID(), out)
	return err
}

func typeName(t interface{ TypeName() string }) string {
	if t == nil {
		return "-"
	}
	return t.TypeName()
}

func newTypesCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered types and extension OIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.dissector()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			reg := d.Types()

			fmt.Fprintln(w, "types:")
			for _, name := range reg.Types() {
				if strings.HasPrefix(name, prefix) {
					fmt.Fprintf(w, "  %s\n", name)
				}
			}

			fmt.Fprintln(w, "extensions:")
			for _, oid := range reg.Extensions() {
				ext, _ := reg.Extension(oid)
				if strings.HasPrefix(ext.TypeName(), prefix) {
					fmt.Fprintf(w, "  %s %s\n", oid, ext.TypeName())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list types whose name starts with prefix")
	return cmd
}

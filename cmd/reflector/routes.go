package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/reflector"
	"github.com/spf13/cobra"
)

func newRoutesCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			if verbose {
				fmt.Fprintln(w, "METHODS\tPATH\tNAME\tBINDINGS")
			} else {
				fmt.Fprintln(w, "METHODS\tPATH\tNAME")
			}
			for _, rt := range reflector.Routes() {
				methods := "*"
				if len(rt.Methods) > 0 {
					methods = strings.Join(rt.Methods, ",")
				}
				if verbose {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", methods, rt.Path, rt.Name, describeRules(rt.Rules))
				} else {
					fmt.Fprintf(w, "%s\t%s\t%s\n", methods, rt.Path, rt.Name)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print the declared bindings")
	return cmd
}

// describeRules renders a rules table as "field=source:key(kind)" items.
func describeRules(rules binding.Rules) string {
	if len(rules) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		key := r.Key
		if key == "" {
			key = r.Field
		}
		s := fmt.Sprintf("%s=%s:%s(%s)", r.Field, r.Source, key, r.Kind)
		if r.Required == binding.Required {
			s += "!"
		}
		if def, ok := r.Default(); ok {
			s += fmt.Sprintf("[default %q]", def)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

package main

import (
	"fmt"
	"sort"

	"github.com/trezcool/classroom/core/validation"
)

// validate prints the normalized values, or the field errors which it also returns as a *core.ValidationError.
func (cli *commandLine) validate(schema string, values map[string]string) error {
	res, err := cli.session.Validate(schema, values)
	if err != nil {
		return err
	}
	if res.OK {
		fmt.Fprintln(cli.out, "ok")
		printFields(cli, res.Value)
		return nil
	}
	printFields(cli, res.Errors)
	return res.Err()
}

func printFields(cli *commandLine, fields validation.Values) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cli.out, "  %s: %s\n", name, fields[name])
	}
}

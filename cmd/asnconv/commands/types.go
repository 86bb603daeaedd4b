package commands

import (
	"fmt"

	"github.com/chaisql/asn1/internal/fixtures"
	"github.com/urfave/cli/v2"
)

// NewTypesCommand returns a cli.Command for "asnconv types".
func NewTypesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "Lists the types known to the convert command",
		Action: func(c *cli.Context) error {
			for _, name := range fixtures.Names() {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

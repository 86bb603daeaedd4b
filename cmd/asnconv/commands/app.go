package commands

import (
	"github.com/urfave/cli/v2"
)

// NewApp creates the asnconv CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "asnconv"
	app.Usage = "Convert ASN.1 values between encoding rules"
	app.EnableBashCompletion = true

	app.Commands = []*cli.Command{
		NewConvertCommand(),
		NewTypesCommand(),
		NewVersionCommand(),
	}

	return app
}

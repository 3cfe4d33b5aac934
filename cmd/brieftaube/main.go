// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/config"
	"github.com/lukasdietrich/brieftaube/internal/log"
	"github.com/lukasdietrich/brieftaube/internal/storage"
)

const usageText = `
Usage:
  brieftaube [OPTIONS] COMMAND

  Resolve recipients using a directory and send mail to them.

Version:
  %s

Commands:
  parse     Resolve a recipient list and print the allowed addresses
  send      Send a message to a resolved recipient list

Options:
%s
`

var (
	// Version is set at compile-time.
	Version string
)

type options struct {
	config      string
	filter      string
	recipients  string
	attachments string
	body        string
	contentType string
	from        string
	subject     string
}

func main() {
	var opts options

	flags := pflag.NewFlagSet("brieftaube", pflag.ContinueOnError)
	flags.StringVarP(&opts.config, "config", "c", "", "Path to a json configuration file")
	flags.StringVarP(&opts.recipients, "recipients", "r", "", "Separated list of recipients, \"cc:\" marks carbon copies")
	flags.StringVarP(&opts.filter, "filter", "f", "", "Separated list of allowed domain suffixes, e.g. \"@example.com\" (parse)")
	flags.StringVarP(&opts.attachments, "attachments", "a", "", "Separated list of files to attach (send)")
	flags.StringVarP(&opts.body, "body", "b", "", "Body text or the path to a file containing it (send)")
	flags.StringVarP(&opts.contentType, "content-type", "t", "PLAIN_TEXT", "Content type of the body, HTML or PLAIN_TEXT (send)")
	flags.StringVarP(&opts.from, "from", "F", "", "Display name of the sender (send)")
	flags.StringVarP(&opts.subject, "subject", "s", "", "Subject of the message (send)")
	flags.Usage = printUsage(flags)

	if err := flags.Parse(os.Args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		log.Fatal().Err(err).Msg("could not parse arguments")
	}

	switch commandName := flags.Arg(1); commandName {
	case "parse", "send":
		setupConfig(opts.config)
		setupLogger()
		config.Print()
		runCommand(commandName, opts)
	default:
		flags.Usage()
	}
}

type command interface {
	run(ctx context.Context, opts options) error
}

func runCommand(commandName string, opts options) {
	var (
		cmd command
		err error
	)

	switch commandName {
	case "parse":
		cmd, err = newParseCommand()
	case "send":
		cmd, err = newSendCommand()
	}

	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the application")
	}

	ctx := log.WithCommand(context.Background(), commandName)

	if err := cmd.run(ctx, opts); err != nil {
		log.FatalContext(ctx).Err(err).Msg("command failed")
	}
}

func printUsage(flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, usageText,
			Version,
			flags.FlagUsages())
	}
}

func setupLogger() {
	level := viper.GetString("log.level")

	if err := log.SetLevel(level); err != nil {
		log.Fatal().Err(err).Msg("unknown log level")
	}

	log.Debug().Str("level", level).Msg("log level set")
}

func setupConfig(filename string) {
	config.Setup()

	if err := config.Load(storage.NewFilesystem(), filename); err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
}

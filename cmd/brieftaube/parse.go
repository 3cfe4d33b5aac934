// Copyright (C) 2021  Lukas Dietrich <lukas@lukasdietrich.com>
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
	"fmt"
	"io"
	"os"

	"github.com/lukasdietrich/brieftaube/internal/config"
	"github.com/lukasdietrich/brieftaube/internal/delivery"
	"github.com/lukasdietrich/brieftaube/internal/recipients"
)

type parseCommand struct {
	Addressbook *delivery.Addressbook
}

func (p *parseCommand) run(ctx context.Context, opts options) error {
	return p.parse(ctx, opts, os.Stdout)
}

// parse prints the resolved and allowed recipients as a single line. Nothing
// is printed if no recipient remains.
func (p *parseCommand) parse(ctx context.Context, opts options, out io.Writer) error {
	if err := config.Require("base", "host", "user", "pass", "sep"); err != nil {
		return err
	}

	sep := config.Separator()

	filter, err := recipients.ParseFilterList(opts.filter, sep)
	if err != nil {
		return err
	}

	result, err := p.Addressbook.Lookup(ctx, opts.recipients, filter)
	if err != nil {
		return err
	}

	if line := recipients.Format(result, sep); line != "" {
		_, err = fmt.Fprintln(out, line)
	}

	return err
}

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

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/config"
	"github.com/lukasdietrich/brieftaube/internal/delivery"
	"github.com/lukasdietrich/brieftaube/internal/mails"
)

type sendCommand struct {
	Fs           afero.Fs
	Mailman      *delivery.Mailman
	ContentTypes *mails.ContentTypes
}

func (s *sendCommand) run(ctx context.Context, opts options) error {
	required := []string{"sender", "sep"}
	if viper.GetString("transport") == delivery.TransportSMTP {
		required = append(required, "host")
	}

	if err := config.Require(required...); err != nil {
		return err
	}

	letter, err := s.letter(opts)
	if err != nil {
		return err
	}

	return s.Mailman.Send(ctx, letter)
}

// letter collects the message from the command line. The body and the
// attachments are read from the filesystem.
func (s *sendCommand) letter(opts options) (mails.Letter, error) {
	contentType, err := s.ContentTypes.Parse(opts.contentType)
	if err != nil {
		return mails.Letter{}, err
	}

	body, err := mails.ReadBody(s.Fs, opts.body)
	if err != nil {
		return mails.Letter{}, err
	}

	attachments, err := mails.ParseAttachments(s.Fs, opts.attachments, config.Separator())
	if err != nil {
		return mails.Letter{}, err
	}

	return mails.Letter{
		FromName:    opts.from,
		Subject:     opts.subject,
		Body:        body,
		ContentType: contentType,
		Attachments: attachments,
		Recipients:  opts.recipients,
	}, nil
}

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

package mails

// Letter is a message as requested by the user, before it is composed into a
// mime message.
type Letter struct {
	// FromName is the display name of the sender.
	FromName string
	// Subject is the subject line.
	Subject string
	// Body is the text of the message.
	Body string
	// ContentType is the mime type of Body.
	ContentType ContentType
	// Attachments are filenames of files to attach.
	Attachments []string
	// Recipients is the classified recipient list as printed by the parse
	// command.
	Recipients string
}

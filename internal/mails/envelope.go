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

package mails

import "time"

// Envelope stores the information about an email needed for transport. It is
// basically what a real envelope is to mail.
type Envelope struct {
	// From is the email-address of the sender.
	From Address
	// To is a list of primary recipient email-addresses.
	To []string
	// Cc is a list of carbon copy recipient email-addresses.
	Cc []string
	// Date is the time when the mail was composed.
	Date time.Time
}

// Recipients returns all recipients, primary ones first.
func (e Envelope) Recipients() []string {
	recipients := make([]string, 0, len(e.To)+len(e.Cc))
	recipients = append(recipients, e.To...)
	return append(recipients, e.Cc...)
}

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

// Package directory provides access to a directory service, which maps
// recipient identifiers to their canonical mail addresses.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

const (
	// AttributeMail is the attribute holding the canonical mail address.
	AttributeMail = "mail"
	// AttributeAccountName is the attribute holding the account name.
	AttributeAccountName = "sAMAccountName"
)

var (
	// ErrUnavailable is returned if the directory cannot be reached or fails
	// to answer a query.
	ErrUnavailable = errors.New("directory: unavailable")

	// ErrAuthFailed is returned if the directory rejects the configured
	// credentials.
	ErrAuthFailed = errors.New("directory: authentication failed")
)

// Directory opens authenticated sessions to a directory service.
type Directory interface {
	// Open connects and binds to the directory. The session must be closed
	// by the caller.
	Open(ctx context.Context) (Session, error)
}

// Session is an authenticated connection to a directory service.
type Session interface {
	// Lookup searches for the first entry with attribute equal to value and
	// returns its mail address. If there is no such entry or the entry has no
	// mail address, ok is false. An error is only returned if the directory
	// fails to answer.
	Lookup(ctx context.Context, attribute, value string) (mail string, ok bool, err error)
	// Close unbinds from the directory and closes the connection.
	Close() error
}

// Filter creates a search filter matching entries with attribute equal to
// value. The value is escaped.
func Filter(attribute, value string) string {
	return fmt.Sprintf("(&(%s=%s))", attribute, ldap.EscapeFilter(value))
}

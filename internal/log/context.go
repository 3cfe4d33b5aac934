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

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type fieldCommand struct{}
type fieldList struct{}
type fieldIdentifier struct{}

// WithCommand adds the command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, fieldCommand{}, command)
}

// WithList adds the name of the recipient list ("to" or "cc") to the context.
func WithList(ctx context.Context, list string) context.Context {
	return context.WithValue(ctx, fieldList{}, list)
}

// WithIdentifier adds the recipient identifier being processed to the context.
func WithIdentifier(ctx context.Context, identifier string) context.Context {
	return context.WithValue(ctx, fieldIdentifier{}, identifier)
}

// appendContextFields adds defined fields in the context to the log event.
func appendContextFields(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if command, ok := ctx.Value(fieldCommand{}).(string); ok {
		event.Str("command", command)
	}

	if list, ok := ctx.Value(fieldList{}).(string); ok {
		event.Str("list", list)
	}

	if identifier, ok := ctx.Value(fieldIdentifier{}).(string); ok {
		event.Str("identifier", identifier)
	}

	return event
}

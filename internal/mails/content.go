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

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownContentType is returned for content type names, which are not
// part of ContentTypes.
var ErrUnknownContentType = errors.New("mails: unknown content type")

// ContentType is the mime type of a body.
type ContentType string

const (
	// TextHTML is the mime type of html bodies.
	TextHTML ContentType = "text/html"
	// TextPlain is the mime type of plain text bodies.
	TextPlain ContentType = "text/plain"
)

// ContentTypes maps user facing content type names to mime types. It is
// created once and never modified.
type ContentTypes struct {
	byName map[string]ContentType
}

// NewContentTypes creates the table of supported content types.
func NewContentTypes() *ContentTypes {
	return &ContentTypes{
		byName: map[string]ContentType{
			"HTML":       TextHTML,
			"PLAIN_TEXT": TextPlain,
		},
	}
}

// Parse returns the mime type for name.
func (c *ContentTypes) Parse(name string) (ContentType, error) {
	contentType, ok := c.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownContentType, name, c.Names())
	}

	return contentType, nil
}

// Names returns all supported names in alphabetical order.
func (c *ContentTypes) Names() []string {
	names := make([]string, 0, len(c.byName))

	for name := range c.byName {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

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

package recipients

import (
	"errors"
	"strings"
)

// CcPrefix marks a segment of a recipient list as carbon copy.
const CcPrefix = "cc:"

var (
	// ErrEmptyRecipients is returned if a recipient list contains neither
	// primary nor carbon copy recipients.
	ErrEmptyRecipients = errors.New("recipients: no recipients")

	// ErrEmptySeparator is returned if a list is to be split by an empty
	// separator.
	ErrEmptySeparator = errors.New("recipients: empty separator")
)

// Classified is a list of recipients split into primary (to) and carbon copy
// (cc) recipients. After classification no address is part of both lists.
type Classified struct {
	To []string
	Cc []string
}

// IsEmpty returns true if there are neither primary nor carbon copy
// recipients.
func (c Classified) IsEmpty() bool {
	return len(c.To) == 0 && len(c.Cc) == 0
}

// Len returns the total number of recipients.
func (c Classified) Len() int {
	return len(c.To) + len(c.Cc)
}

// Classify splits raw at sep into primary and carbon copy recipients.
//
// Empty segments are ignored. A segment starting with "cc:" is a carbon copy
// recipient, unless nothing remains after the prefix, in which case it is
// ignored as well. All other segments are primary recipients and are taken
// verbatim. Both lists are deduplicated and carbon copy recipients, which are
// also primary recipients, are removed.
func Classify(raw, sep string) (Classified, error) {
	var c Classified

	segments, err := split(raw, sep)
	if err != nil {
		return c, err
	}

	for _, segment := range segments {
		if strings.HasPrefix(segment, CcPrefix) {
			if recipient := strings.TrimPrefix(segment, CcPrefix); recipient != "" {
				c.Cc = append(c.Cc, recipient)
			}
		} else {
			c.To = append(c.To, segment)
		}
	}

	c = Finalize(c)

	if c.IsEmpty() {
		return c, ErrEmptyRecipients
	}

	return c, nil
}

// Finalize deduplicates both lists and removes all carbon copy recipients,
// which are primary recipients as well.
func Finalize(c Classified) Classified {
	to := Deduplicate(c.To)
	cc := Difference(Deduplicate(c.Cc), to)

	return Classified{To: to, Cc: cc}
}

// split splits raw at sep and drops empty segments.
func split(raw, sep string) ([]string, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}

	var segments []string

	for _, segment := range strings.Split(raw, sep) {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments, nil
}

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

package recipients

import (
	"strings"

	"golang.org/x/net/idna"

	"github.com/lukasdietrich/brieftaube/internal/log"
)

// FilterList is an allow-list of domain suffixes. Every entry starts with an
// "@" sign.
type FilterList []string

// ParseFilterList splits raw at sep and keeps every non-empty entry, which
// starts with an "@" sign and has a valid domain. The result is
// deduplicated. Entries are kept verbatim.
func ParseFilterList(raw, sep string) (FilterList, error) {
	segments, err := split(raw, sep)
	if err != nil {
		return nil, err
	}

	var entries []string

	for _, segment := range segments {
		if !strings.HasPrefix(segment, "@") {
			log.Debug().Str("entry", segment).Msg("ignoring filter entry without @")
			continue
		}

		if _, err := idna.Lookup.ToASCII(segment[1:]); err != nil {
			log.Warn().Str("entry", segment).Err(err).Msg("ignoring filter entry with invalid domain")
			continue
		}

		entries = append(entries, segment)
	}

	return FilterList(Deduplicate(entries)), nil
}

// Allows checks if address ends with any of the domain suffixes. An address,
// which is exactly one of the suffixes, is not allowed. An empty list does not
// allow any address.
func (f FilterList) Allows(address string) bool {
	allowed := false

	for _, suffix := range f {
		if address == suffix {
			return false
		}

		if strings.HasSuffix(address, suffix) {
			allowed = true
		}
	}

	return allowed
}

// Apply returns all allowed addresses in their original order.
func (f FilterList) Apply(addresses []string) []string {
	allowed := make([]string, 0, len(addresses))

	for _, address := range addresses {
		if f.Allows(address) {
			allowed = append(allowed, address)
		} else {
			log.Debug().Str("address", address).Msg("address rejected by filter")
		}
	}

	return allowed
}

// ApplyClassified filters both lists of c.
func (f FilterList) ApplyClassified(c Classified) Classified {
	return Classified{
		To: f.Apply(c.To),
		Cc: f.Apply(c.Cc),
	}
}

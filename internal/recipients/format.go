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

import "strings"

// Format renders c as a single recipient directive. Every primary recipient
// is followed by sep. Carbon copy recipients are prefixed with "cc:" and
// joined by sep, so the last one is not followed by sep.
//
// The result can be read by Classify again. If c is empty, the result is
// empty as well.
func Format(c Classified, sep string) string {
	var b strings.Builder

	for _, to := range c.To {
		b.WriteString(to)
		b.WriteString(sep)
	}

	for i, cc := range c.Cc {
		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(CcPrefix)
		b.WriteString(cc)
	}

	return b.String()
}

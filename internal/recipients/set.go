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

// Deduplicate returns the items in the order of their first occurrence. Later
// duplicates are removed. Items are compared byte by byte, so no case folding
// or other normalization takes place.
func Deduplicate(items []string) []string {
	seen := make(map[string]bool, len(items))
	unique := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			unique = append(unique, item)
		}
	}

	return unique
}

// Difference returns the items of primary, which are not contained in
// subtract. The order of primary is preserved.
func Difference(primary, subtract []string) []string {
	excluded := newSet(subtract)
	remaining := make([]string, 0, len(primary))

	for _, item := range primary {
		if !excluded.contains(item) {
			remaining = append(remaining, item)
		}
	}

	return remaining
}

type set map[string]bool

func newSet(items []string) set {
	s := make(set, len(items))

	for _, item := range items {
		s[item] = true
	}

	return s
}

func (s set) contains(item string) bool {
	return s[item]
}

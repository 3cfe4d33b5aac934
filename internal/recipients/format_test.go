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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    Classified
		expected string
	}{
		{
			name:     "empty",
			input:    Classified{},
			expected: "",
		},
		{
			name:     "to only",
			input:    Classified{To: []string{"to1", "to2"}},
			expected: "to1,to2,",
		},
		{
			name:     "single cc",
			input:    Classified{Cc: []string{"ccA"}},
			expected: "cc:ccA",
		},
		{
			name:     "to and cc",
			input:    Classified{To: []string{"to1", "to2"}, Cc: []string{"ccA", "ccB"}},
			expected: "to1,to2,cc:ccA,cc:ccB",
		},
		{
			name:     "to and single cc",
			input:    Classified{To: []string{"to1"}, Cc: []string{"ccA"}},
			expected: "to1,cc:ccA",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.input, ","))
		})
	}
}

func TestFormatClassifyRoundTrip(t *testing.T) {
	input := Classified{
		To: []string{"alen@example.com", "bob@example.com"},
		Cc: []string{"carol@example.com"},
	}

	actual, err := Classify(Format(input, ";"), ";")
	require.NoError(t, err)
	assert.Equal(t, input, actual)
}

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
	"strings"

	"github.com/spf13/afero"
)

// ErrAttachmentInvalid is returned if an attachment is not a readable regular
// file.
var ErrAttachmentInvalid = errors.New("mails: invalid attachment")

// ReadBody returns the content of the file named by arg. If there is no such
// regular file, arg itself is the body.
func ReadBody(fs afero.Fs, arg string) (string, error) {
	if arg == "" {
		return "", nil
	}

	info, err := fs.Stat(arg)
	if err != nil || !info.Mode().IsRegular() {
		return arg, nil
	}

	content, err := afero.ReadFile(fs, arg)
	if err != nil {
		return "", fmt.Errorf("could not read body from %q: %w", arg, err)
	}

	return string(content), nil
}

// ParseAttachments splits raw at sep into a deduplicated list of filenames.
// Every file must exist and be a regular file.
func ParseAttachments(fs afero.Fs, raw, sep string) ([]string, error) {
	if sep == "" {
		return nil, fmt.Errorf("%w: empty separator", ErrAttachmentInvalid)
	}

	var (
		seen      = make(map[string]bool)
		filenames []string
	)

	for _, filename := range strings.Split(raw, sep) {
		if filename == "" || seen[filename] {
			continue
		}

		if err := checkFile(fs, filename); err != nil {
			return nil, err
		}

		seen[filename] = true
		filenames = append(filenames, filename)
	}

	return filenames, nil
}

func checkFile(fs afero.Fs, filename string) error {
	info, err := fs.Stat(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAttachmentInvalid, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q is not a regular file", ErrAttachmentInvalid, filename)
	}

	return nil
}

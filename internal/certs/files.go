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

package certs

import (
	"crypto/tls"

	"github.com/spf13/afero"
)

type filesCertSource struct {
	fs          afero.Fs
	crtFilename string
	keyFilename string
}

func newFilesCertSource(fs afero.Fs, crtFilename, keyFilename string) *filesCertSource {
	return &filesCertSource{
		fs:          fs,
		crtFilename: crtFilename,
		keyFilename: keyFilename,
	}
}

func (s *filesCertSource) load() (*tls.Certificate, error) {
	crtPem, err := afero.ReadFile(s.fs, s.crtFilename)
	if err != nil {
		return nil, err
	}

	keyPem, err := afero.ReadFile(s.fs, s.keyFilename)
	if err != nil {
		return nil, err
	}

	certificate, err := tls.X509KeyPair(crtPem, keyPem)
	if err != nil {
		return nil, err
	}

	return &certificate, nil
}

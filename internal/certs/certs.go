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
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("insecure", false)
	viper.SetDefault("tls.crt", "")
	viper.SetDefault("tls.key", "")
}

// Options configure the tls client side of outbound connections.
type Options struct {
	// Insecure disables the verification of server certificates.
	Insecure bool
	// CrtFilename and KeyFilename point to an optional client certificate.
	// Either both or none of them must be set.
	CrtFilename string
	KeyFilename string
}

// OptionsFromViper returns Options using the configuration from viper.
//
// `insecure` disables certificate verification.
// `tls.crt` and `tls.key` are the filenames of a client certificate.
func OptionsFromViper() Options {
	return Options{
		Insecure:    viper.GetBool("insecure"),
		CrtFilename: viper.GetString("tls.crt"),
		KeyFilename: viper.GetString("tls.key"),
	}
}

// NewClientConfig creates a tls config to connect to serverName. If a client
// certificate is configured, it is loaded from fs.
func NewClientConfig(fs afero.Fs, serverName string, opts Options) (*tls.Config, error) {
	config := &tls.Config{
		ServerName:         serverName,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.Insecure, // nolint:gosec
	}

	source, err := newCertSource(fs, opts)
	if err != nil {
		return nil, err
	}

	if source != nil {
		cert, err := source.load()
		if err != nil {
			return nil, fmt.Errorf("could not load client certificate: %w", err)
		}

		config.Certificates = []tls.Certificate{*cert}
	}

	return config, nil
}

type certSource interface {
	load() (*tls.Certificate, error)
}

func newCertSource(fs afero.Fs, opts Options) (certSource, error) {
	switch {
	case opts.CrtFilename == "" && opts.KeyFilename == "":
		return nil, nil
	case opts.CrtFilename == "" || opts.KeyFilename == "":
		return nil, fmt.Errorf("client certificate needs both tls.crt and tls.key")
	default:
		return newFilesCertSource(fs, opts.CrtFilename, opts.KeyFilename), nil
	}
}

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

package directory

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/certs"
	"github.com/lukasdietrich/brieftaube/internal/log"
)

// DefaultPort is used if no port is configured.
const DefaultPort = 389

func init() {
	viper.SetDefault("starttls", true)
	viper.SetDefault("timeout", "10s")
}

// Options configure the connection to an ldap directory.
type Options struct {
	Host     string
	Port     uint16
	User     string
	Pass     string
	Base     string
	StartTLS bool
	Timeout  time.Duration
	TLS      certs.Options
}

// OptionsFromViper returns Options using the configuration from viper.
//
// `host` and `port` locate the directory. `port` defaults to DefaultPort.
// `user` and `pass` are the credentials for the simple bind.
// `base` is the base dn for all searches.
// `starttls` upgrades the connection to tls before binding.
// `timeout` limits dialing as well as every single request.
func OptionsFromViper() Options {
	port := viper.GetUint16("port")
	if port == 0 {
		port = DefaultPort
	}

	return Options{
		Host:     viper.GetString("host"),
		Port:     port,
		User:     viper.GetString("user"),
		Pass:     viper.GetString("pass"),
		Base:     viper.GetString("base"),
		StartTLS: viper.GetBool("starttls"),
		Timeout:  viper.GetDuration("timeout"),
		TLS:      certs.OptionsFromViper(),
	}
}

// URL returns the ldap url of the directory.
func (o Options) URL() string {
	u := url.URL{
		Scheme: "ldap",
		Host:   net.JoinHostPort(o.Host, strconv.Itoa(int(o.Port))),
	}

	return u.String()
}

// LDAP is a Directory backed by an ldap server.
type LDAP struct {
	fs   afero.Fs
	opts Options
}

// NewLDAP creates a new ldap Directory. The filesystem is used to load an
// optional client certificate.
func NewLDAP(fs afero.Fs, opts Options) *LDAP {
	return &LDAP{
		fs:   fs,
		opts: opts,
	}
}

// Open dials the ldap server, upgrades the connection to tls if configured
// and performs a simple bind.
func (d *LDAP) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	addr := d.opts.URL()

	log.DebugContext(ctx).
		Str("url", addr).
		Bool("starttls", d.opts.StartTLS).
		Msg("connecting to directory")

	conn, err := ldap.DialURL(addr, ldap.DialWithDialer(&net.Dialer{Timeout: d.opts.Timeout}))
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect to %s: %w", ErrUnavailable, addr, err)
	}

	if d.opts.Timeout > 0 {
		conn.SetTimeout(d.opts.Timeout)
	}

	if err := d.upgrade(conn); err != nil {
		conn.Close()
		return nil, err
	}

	if err := conn.Bind(d.opts.User, d.opts.Pass); err != nil {
		conn.Close()
		return nil, bindError(err)
	}

	log.DebugContext(ctx).
		Str("url", addr).
		Str("user", d.opts.User).
		Msg("bound to directory")

	return &ldapSession{conn: conn, base: d.opts.Base}, nil
}

func (d *LDAP) upgrade(conn *ldap.Conn) error {
	if !d.opts.StartTLS {
		return nil
	}

	tlsConfig, err := certs.NewClientConfig(d.fs, d.opts.Host, d.opts.TLS)
	if err != nil {
		return err
	}

	if err := conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("%w: starttls failed: %w", ErrUnavailable, err)
	}

	return nil
}

// bindError classifies an error returned by a bind request. Rejected
// credentials are reported as ErrAuthFailed, everything else is a problem of
// the connection.
func bindError(err error) error {
	if ldap.IsErrorAnyOf(err,
		ldap.LDAPResultInvalidCredentials,
		ldap.LDAPResultInappropriateAuthentication,
		ldap.LDAPResultInsufficientAccessRights,
		ldap.ErrorEmptyPassword,
	) {
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}

	return fmt.Errorf("%w: bind failed: %w", ErrUnavailable, err)
}

type ldapSession struct {
	conn ldap.Client
	base string
}

// Lookup searches the whole subtree below base and reads the mail attribute of
// the first entry found.
func (s *ldapSession) Lookup(ctx context.Context, attribute, value string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	filter := Filter(attribute, value)
	request := ldap.NewSearchRequest(
		s.base,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		[]string{AttributeMail},
		nil,
	)

	log.TraceContext(ctx).
		Str("base", s.base).
		Str("filter", filter).
		Msg("searching directory")

	result, err := s.conn.Search(request)
	if err != nil {
		return "", false, fmt.Errorf("%w: search %s failed: %w", ErrUnavailable, filter, err)
	}

	if len(result.Entries) == 0 {
		return "", false, nil
	}

	mail := result.Entries[0].GetAttributeValue(AttributeMail)
	return mail, mail != "", nil
}

func (s *ldapSession) Close() error {
	defer s.conn.Close()
	return s.conn.Unbind()
}

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

package delivery

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/certs"
	"github.com/lukasdietrich/brieftaube/internal/log"
	"github.com/lukasdietrich/brieftaube/internal/mails"
)

// DefaultSMTPPort is used if no port is configured.
const DefaultSMTPPort = 25

func init() {
	viper.SetDefault("hostname", "localhost")
}

// SMTPOptions configure the connection to an smtp server.
type SMTPOptions struct {
	Host     string
	Port     uint16
	User     string
	Pass     string
	Hostname string
	StartTLS bool
	Timeout  time.Duration
	TLS      certs.Options
}

// SMTPOptionsFromViper returns SMTPOptions using the configuration from viper.
//
// `host` and `port` locate the server. `port` defaults to DefaultSMTPPort.
// `user` and `pass` are used for AUTH PLAIN, unless `user` is empty.
// `hostname` is sent with EHLO.
// `starttls` upgrades the connection to tls before saying hello.
// `timeout` limits dialing as well as every single command.
func SMTPOptionsFromViper() SMTPOptions {
	port := viper.GetUint16("port")
	if port == 0 {
		port = DefaultSMTPPort
	}

	return SMTPOptions{
		Host:     viper.GetString("host"),
		Port:     port,
		User:     viper.GetString("user"),
		Pass:     viper.GetString("pass"),
		Hostname: viper.GetString("hostname"),
		StartTLS: viper.GetBool("starttls"),
		Timeout:  viper.GetDuration("timeout"),
		TLS:      certs.OptionsFromViper(),
	}
}

// SMTPCourier submits mails to a single smtp server.
type SMTPCourier struct {
	fs   afero.Fs
	opts SMTPOptions
}

// NewSMTPCourier creates a new courier for submission.
func NewSMTPCourier(fs afero.Fs, opts SMTPOptions) *SMTPCourier {
	return &SMTPCourier{
		fs:   fs,
		opts: opts,
	}
}

func (c *SMTPCourier) addr() string {
	return net.JoinHostPort(c.opts.Host, strconv.Itoa(int(c.opts.Port)))
}

// Send submits message to the server. There are no retries. Failures are
// reported as TransportError.
func (c *SMTPCourier) Send(ctx context.Context, envelope mails.Envelope, message []byte) error {
	addr := c.addr()

	log.DebugContext(ctx).
		Str("server", addr).
		Int("recipients", len(envelope.To)+len(envelope.Cc)).
		Msg("connecting to smtp server")

	dialer := net.Dialer{Timeout: c.opts.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return transportErr(err, "could not connect to %s", addr)
	}

	client, err := c.newClient(conn)
	if err != nil {
		conn.Close()
		return err
	}

	defer client.Close()

	if err := c.initClient(client); err != nil {
		return err
	}

	if err := c.copyEnvelope(client, envelope); err != nil {
		return err
	}

	if err := c.copyData(client, message); err != nil {
		return err
	}

	if err := client.Quit(); err != nil {
		log.WarnContext(ctx).Err(err).Msg("could not quit smtp session")
	}

	log.InfoContext(ctx).Str("server", addr).Msg("message submitted")
	return nil
}

// newClient wraps conn in an smtp client. If StartTLS is enabled, the
// connection is upgraded before anything else is sent. A server without the
// STARTTLS extension is an error then.
func (c *SMTPCourier) newClient(conn net.Conn) (*smtp.Client, error) {
	if !c.opts.StartTLS {
		return c.withTimeouts(smtp.NewClient(conn)), nil
	}

	config, err := certs.NewClientConfig(c.fs, c.opts.Host, c.opts.TLS)
	if err != nil {
		return nil, transportErr(err, "could not configure tls")
	}

	client, err := smtp.NewClientStartTLS(conn, config)
	if err != nil {
		return nil, transportErr(err, "starttls failed")
	}

	return c.withTimeouts(client), nil
}

func (c *SMTPCourier) withTimeouts(client *smtp.Client) *smtp.Client {
	if c.opts.Timeout > 0 {
		client.CommandTimeout = c.opts.Timeout
		client.SubmissionTimeout = c.opts.Timeout
	}

	return client
}

// initClient says hello to the server and authenticates.
func (c *SMTPCourier) initClient(client *smtp.Client) error {
	if err := client.Hello(c.opts.Hostname); err != nil {
		return transportErr(err, "hello rejected")
	}

	if c.opts.User != "" {
		auth := sasl.NewPlainClient("", c.opts.User, c.opts.Pass)

		if err := client.Auth(auth); err != nil {
			return transportErr(err, "authentication failed")
		}
	}

	return nil
}

// copyEnvelope sends the return- and forward-paths of the mail.
func (c *SMTPCourier) copyEnvelope(client *smtp.Client, envelope mails.Envelope) error {
	if err := client.Mail(envelope.From.String(), nil); err != nil {
		return transportErr(err, "sender rejected")
	}

	for _, recipient := range envelope.Recipients() {
		if err := client.Rcpt(recipient, nil); err != nil {
			return transportErr(err, "recipient %s rejected", recipient)
		}
	}

	return nil
}

// copyData writes the mail content.
func (c *SMTPCourier) copyData(client *smtp.Client, message []byte) error {
	w, err := client.Data()
	if err != nil {
		return transportErr(err, "data rejected")
	}

	if _, err := w.Write(message); err != nil {
		w.Close()
		return transportErr(err, "could not write message")
	}

	if err := w.Close(); err != nil {
		return transportErr(err, "message rejected")
	}

	return nil
}

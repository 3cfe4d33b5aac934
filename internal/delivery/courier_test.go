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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"math/big"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/brieftaube/internal/certs"
	"github.com/lukasdietrich/brieftaube/internal/log"
	"github.com/lukasdietrich/brieftaube/internal/mails"
)

type testMessage struct {
	helo string
	tls  bool
	from string
	to   []string
	data []byte
}

type testBackend struct {
	mu       sync.Mutex
	messages []testMessage

	user     string
	pass     string
	rejectTo map[string]*smtp.SMTPError
}

func (b *testBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	_, isTLS := c.TLSConnectionState()
	return &testSession{backend: b, helo: c.Hostname(), tls: isTLS}, nil
}

func (b *testBackend) received() []testMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.messages
}

type testSession struct {
	backend *testBackend
	helo    string
	tls     bool
	authed  bool
	from    string
	to      []string
}

func (s *testSession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *testSession) Auth(mech string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if username != s.backend.user || password != s.backend.pass {
			return &smtp.SMTPError{Code: 535, EnhancedCode: smtp.EnhancedCode{5, 7, 8}, Message: "invalid credentials"}
		}

		s.authed = true
		return nil
	}), nil
}

func (s *testSession) Mail(from string, opts *smtp.MailOptions) error {
	if s.backend.user != "" && !s.authed {
		return smtp.ErrAuthRequired
	}

	s.from = from
	return nil
}

func (s *testSession) Rcpt(to string, opts *smtp.RcptOptions) error {
	if err, ok := s.backend.rejectTo[to]; ok {
		return err
	}

	s.to = append(s.to, to)
	return nil
}

func (s *testSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	s.backend.messages = append(s.backend.messages, testMessage{
		helo: s.helo,
		tls:  s.tls,
		from: s.from,
		to:   s.to,
		data: data,
	})

	return nil
}

func (s *testSession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *testSession) Logout() error {
	return nil
}

func TestSMTPCourierTestSuite(t *testing.T) {
	suite.Run(t, new(SMTPCourierTestSuite))
}

type SMTPCourierTestSuite struct {
	suite.Suite

	backend  *testBackend
	server   *smtp.Server
	listener net.Listener
	opts     SMTPOptions
	envelope mails.Envelope
}

func (s *SMTPCourierTestSuite) SetupTest() {
	s.backend = &testBackend{rejectTo: make(map[string]*smtp.SMTPError)}

	s.server = smtp.NewServer(s.backend)
	s.server.Domain = "mx.example.com"
	s.server.AllowInsecureAuth = true
	s.server.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{selfSignedCertificate(s.T())},
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	s.listener = listener

	go s.server.Serve(listener) // nolint:errcheck

	host, port, err := net.SplitHostPort(listener.Addr().String())
	s.Require().NoError(err)
	portNumber, err := strconv.Atoi(port)
	s.Require().NoError(err)

	s.opts = SMTPOptions{
		Host:     host,
		Port:     uint16(portNumber),
		Hostname: "client.example.com",
		Timeout:  5 * time.Second,
	}

	from, err := mails.Parse("noreply@example.com")
	s.Require().NoError(err)

	s.envelope = mails.Envelope{
		From: from,
		To:   []string{"alen@example.com"},
		Cc:   []string{"cain@example.com"},
		Date: time.Now(),
	}
}

func (s *SMTPCourierTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *SMTPCourierTestSuite) send() error {
	ctx := log.WithCommand(context.TODO(), s.T().Name())
	courier := NewSMTPCourier(afero.NewMemMapFs(), s.opts)

	return courier.Send(ctx, s.envelope, []byte("Subject: Test\r\n\r\nHello\r\n"))
}

func (s *SMTPCourierTestSuite) TestSend() {
	s.Require().NoError(s.send())

	messages := s.backend.received()
	s.Require().Len(messages, 1)
	s.Assert().Equal("client.example.com", messages[0].helo)
	s.Assert().False(messages[0].tls)
	s.Assert().Equal("noreply@example.com", messages[0].from)
	s.Assert().Equal([]string{"alen@example.com", "cain@example.com"}, messages[0].to)
	s.Assert().Contains(string(messages[0].data), "Hello")
}

func (s *SMTPCourierTestSuite) TestSendStartTLS() {
	s.opts.StartTLS = true
	s.opts.TLS = certs.Options{Insecure: true}
	s.backend.user = "reports"
	s.backend.pass = "secret"
	s.opts.User = "reports"
	s.opts.Pass = "secret"

	s.Require().NoError(s.send())

	messages := s.backend.received()
	s.Require().Len(messages, 1)
	s.Assert().True(messages[0].tls)
	s.Assert().Equal("client.example.com", messages[0].helo)
	s.Assert().Equal([]string{"alen@example.com", "cain@example.com"}, messages[0].to)
}

func (s *SMTPCourierTestSuite) TestSendStartTLSUntrusted() {
	s.opts.StartTLS = true

	err := s.send()
	s.Assert().ErrorIs(err, ErrTransport)
	s.Assert().Empty(s.backend.received())
}

func (s *SMTPCourierTestSuite) TestSendAuth() {
	s.backend.user = "reports"
	s.backend.pass = "secret"
	s.opts.User = "reports"
	s.opts.Pass = "secret"

	s.Require().NoError(s.send())
	s.Assert().Len(s.backend.received(), 1)
}

func (s *SMTPCourierTestSuite) TestSendAuthFailed() {
	s.backend.user = "reports"
	s.backend.pass = "secret"
	s.opts.User = "reports"
	s.opts.Pass = "wrong"

	err := s.send()
	s.Assert().ErrorIs(err, ErrTransport)
	s.Assert().Empty(s.backend.received())
}

func (s *SMTPCourierTestSuite) TestSendRecipientRejectedPermanently() {
	s.backend.rejectTo["cain@example.com"] = &smtp.SMTPError{
		Code:         550,
		EnhancedCode: smtp.EnhancedCode{5, 1, 1},
		Message:      "no such user",
	}

	err := s.send()
	s.Assert().ErrorIs(err, ErrTransport)
	s.Assert().True(IsPermanent(err))
	s.Assert().Contains(err.Error(), "cain@example.com")
	s.Assert().Empty(s.backend.received())
}

func (s *SMTPCourierTestSuite) TestSendRecipientRejectedTemporarily() {
	s.backend.rejectTo["alen@example.com"] = &smtp.SMTPError{
		Code:         451,
		EnhancedCode: smtp.EnhancedCode{4, 3, 0},
		Message:      "try again later",
	}

	err := s.send()
	s.Assert().ErrorIs(err, ErrTransport)
	s.Assert().False(IsPermanent(err))
}

func (s *SMTPCourierTestSuite) TestSendConnectionRefused() {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	s.opts.Port = uint16(listener.Addr().(*net.TCPAddr).Port)
	s.Require().NoError(listener.Close())

	err = s.send()
	s.Assert().ErrorIs(err, ErrTransport)
	s.Assert().False(IsPermanent(err))
}

func TestSMTPCourierStartTLSNotOffered(t *testing.T) {
	server := smtp.NewServer(&testBackend{})
	server.Domain = "mx.example.com"

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go server.Serve(listener) // nolint:errcheck
	defer server.Close()

	from, err := mails.Parse("noreply@example.com")
	require.NoError(t, err)

	courier := NewSMTPCourier(afero.NewMemMapFs(), SMTPOptions{
		Host:     "127.0.0.1",
		Port:     uint16(listener.Addr().(*net.TCPAddr).Port),
		Hostname: "client.example.com",
		StartTLS: true,
		Timeout:  5 * time.Second,
		TLS:      certs.Options{Insecure: true},
	})

	envelope := mails.Envelope{From: from, To: []string{"alen@example.com"}, Date: time.Now()}

	err = courier.Send(context.TODO(), envelope, []byte("Subject: Test\r\n\r\nHello\r\n"))
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "starttls")
}

func selfSignedCertificate(t *testing.T) tls.Certificate {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "mx.example.com"},
		DNSNames:     []string{"mx.example.com"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}
}

func TestSMTPOptionsFromViper(t *testing.T) {
	viper.Set("host", "smtp.example.com")
	viper.Set("port", 587)
	viper.Set("user", "reports")
	viper.Set("pass", "secret")
	viper.Set("starttls", true)
	viper.Set("timeout", "3s")

	expected := SMTPOptions{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "reports",
		Pass:     "secret",
		Hostname: "localhost",
		StartTLS: true,
		Timeout:  3 * time.Second,
		TLS:      certs.OptionsFromViper(),
	}

	assert.Equal(t, expected, SMTPOptionsFromViper())

	viper.Set("port", 0)
	assert.EqualValues(t, DefaultSMTPPort, SMTPOptionsFromViper().Port)
}

func TestTransportErrorIs(t *testing.T) {
	cause := errors.New("boom")
	err := &TransportError{Err: cause}

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsPermanent(err))
	assert.False(t, IsPermanent(cause))
}

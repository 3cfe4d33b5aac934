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

package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/emersion/go-smtp"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/mails"
)

// ErrTransport is returned if a message could not be handed to the mail
// server.
var ErrTransport = errors.New("delivery: transport failed")

const (
	// TransportSMTP submits messages to an smtp server.
	TransportSMTP = "smtp"
	// TransportSES submits messages to the aws simple email service.
	TransportSES = "ses"
)

func init() {
	viper.SetDefault("transport", TransportSMTP)
}

// Transport hands a composed message to a mail server.
type Transport interface {
	// Send submits message for all recipients of envelope.
	Send(ctx context.Context, envelope mails.Envelope, message []byte) error
}

// TransportError wraps a failed submission. It matches ErrTransport.
type TransportError struct {
	// Permanent is true if the server rejected the message and trying again
	// will not help.
	Permanent bool
	Err       error
}

func (e *TransportError) Error() string {
	kind := "transient"
	if e.Permanent {
		kind = "permanent"
	}

	return fmt.Sprintf("%v (%s): %v", ErrTransport, kind, e.Err)
}

// Unwrap returns both ErrTransport and the cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// IsPermanent tests if err is a permanent transport error.
func IsPermanent(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Permanent
}

// transportErr wraps err into a TransportError. Smtp replies with a 5xx code
// are permanent, everything else is transient.
func transportErr(err error, format string, args ...interface{}) error {
	var smtpErr *smtp.SMTPError

	return &TransportError{
		Permanent: errors.As(err, &smtpErr) && !smtpErr.Temporary(),
		Err:       fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err),
	}
}

// TransportOptions select and configure the transport.
type TransportOptions struct {
	Kind string
	SMTP SMTPOptions
	SES  SESOptions
}

// TransportOptionsFromViper returns TransportOptions using the configuration
// from viper.
//
// `transport` is either "smtp" or "ses".
func TransportOptionsFromViper() TransportOptions {
	return TransportOptions{
		Kind: viper.GetString("transport"),
		SMTP: SMTPOptionsFromViper(),
		SES:  SESOptionsFromViper(),
	}
}

// NewTransport creates the configured transport.
func NewTransport(fs afero.Fs, opts TransportOptions) (Transport, error) {
	switch opts.Kind {
	case TransportSMTP:
		return NewSMTPCourier(fs, opts.SMTP), nil

	case TransportSES:
		return NewSESCourier(context.Background(), opts.SES)

	default:
		return nil, fmt.Errorf("%w: unknown transport %q", ErrTransport, opts.Kind)
	}
}

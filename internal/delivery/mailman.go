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
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/crypto"
	"github.com/lukasdietrich/brieftaube/internal/log"
	"github.com/lukasdietrich/brieftaube/internal/mails"
	"github.com/lukasdietrich/brieftaube/internal/recipients"
)

const defaultAttachmentType = "application/octet-stream"

// MailmanOptions configure the Mailman.
type MailmanOptions struct {
	Sender    string
	Separator string
}

// MailmanOptionsFromViper returns MailmanOptions using the configuration from
// viper.
//
// `sender` is the envelope sender and the address of the From header.
// `sep` separates the entries of recipient lists.
func MailmanOptionsFromViper() MailmanOptions {
	return MailmanOptions{
		Sender:    viper.GetString("sender"),
		Separator: viper.GetString("sep"),
	}
}

// Mailman composes letters into mime messages and hands them to a transport.
type Mailman struct {
	fs        afero.Fs
	idGen     crypto.IDGenerator
	transport Transport
	opts      MailmanOptions
	now       func() time.Time
}

// NewMailman creates a new mailman for delivery.
func NewMailman(fs afero.Fs, idGen crypto.IDGenerator, transport Transport, opts MailmanOptions) *Mailman {
	return &Mailman{
		fs:        fs,
		idGen:     idGen,
		transport: transport,
		opts:      opts,
		now:       time.Now,
	}
}

// Send classifies the recipients of letter, composes the message and submits
// it. The recipients are not looked up in a directory.
func (m *Mailman) Send(ctx context.Context, letter mails.Letter) error {
	from, err := mails.ParseSender(m.opts.Sender)
	if err != nil {
		return err
	}

	classified, err := recipients.Classify(letter.Recipients, m.opts.Separator)
	if err != nil {
		return err
	}

	envelope := mails.Envelope{
		From: from,
		To:   classified.To,
		Cc:   classified.Cc,
		Date: m.now(),
	}

	message, err := m.Compose(envelope, letter)
	if err != nil {
		return err
	}

	log.InfoContext(ctx).
		Int("to", len(envelope.To)).
		Int("cc", len(envelope.Cc)).
		Int("attachments", len(letter.Attachments)).
		Int("size", len(message)).
		Msg("sending message")

	return m.transport.Send(ctx, envelope, message)
}

// Compose creates the mime message of letter. A letter without attachments
// is a single inline part, otherwise a multipart message.
func (m *Mailman) Compose(envelope mails.Envelope, letter mails.Letter) ([]byte, error) {
	header, err := m.header(envelope, letter)
	if err != nil {
		return nil, err
	}

	contentType := letter.ContentType
	if contentType == "" {
		contentType = mails.TextPlain
	}

	var buf bytes.Buffer

	if len(letter.Attachments) == 0 {
		header.SetContentType(string(contentType), map[string]string{"charset": "utf-8"})

		w, err := mail.CreateSingleInlineWriter(&buf, header)
		if err != nil {
			return nil, err
		}

		if err := writeAndClose(w, letter.Body); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	}

	mw, err := mail.CreateWriter(&buf, header)
	if err != nil {
		return nil, err
	}

	var inline mail.InlineHeader
	inline.SetContentType(string(contentType), map[string]string{"charset": "utf-8"})

	w, err := mw.CreateSingleInline(inline)
	if err != nil {
		return nil, err
	}

	if err := writeAndClose(w, letter.Body); err != nil {
		return nil, err
	}

	for _, filename := range letter.Attachments {
		if err := m.attach(mw, filename); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (m *Mailman) header(envelope mails.Envelope, letter mails.Letter) (mail.Header, error) {
	var header mail.Header

	id, err := m.idGen.GenerateID()
	if err != nil {
		return header, fmt.Errorf("could not generate message id: %w", err)
	}

	header.SetDate(envelope.Date)
	header.SetMessageID(id + "@" + messageIDDomain(envelope.From))
	header.SetSubject(letter.Subject)
	header.SetAddressList("From", []*mail.Address{{
		Name:    letter.FromName,
		Address: envelope.From.String(),
	}})

	if len(envelope.To) > 0 {
		header.SetAddressList("To", addressList(envelope.To))
	}

	if len(envelope.Cc) > 0 {
		header.SetAddressList("Cc", addressList(envelope.Cc))
	}

	return header, nil
}

// messageIDDomain returns the punycode domain of the sender. Domains that are
// not valid idna are used verbatim.
func messageIDDomain(from mails.Address) string {
	domain, err := from.DomainASCII()
	if err != nil {
		log.Debug().Str("domain", from.Domain()).Err(err).Msg("using sender domain verbatim in message id")
		return from.Domain()
	}

	return domain
}

// attach adds the file as base64 encoded attachment part.
func (m *Mailman) attach(mw *mail.Writer, filename string) error {
	f, err := m.fs.Open(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", mails.ErrAttachmentInvalid, err)
	}

	defer f.Close()

	var header mail.AttachmentHeader
	header.SetContentType(attachmentType(filename))
	header.SetFilename(filepath.Base(filename))

	w, err := mw.CreateAttachment(header)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("could not attach %q: %w", filename, err)
	}

	return w.Close()
}

// attachmentType guesses the media type by the file extension.
func attachmentType(filename string) (string, map[string]string) {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		if mediaType, params, err := mime.ParseMediaType(t); err == nil {
			return mediaType, params
		}
	}

	return defaultAttachmentType, nil
}

func addressList(addresses []string) []*mail.Address {
	list := make([]*mail.Address, len(addresses))

	for i, address := range addresses {
		list[i] = &mail.Address{Address: address}
	}

	return list
}

func writeAndClose(w io.WriteCloser, body string) error {
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

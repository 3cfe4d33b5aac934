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
	"fmt"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/directory"
	"github.com/lukasdietrich/brieftaube/internal/log"
	"github.com/lukasdietrich/brieftaube/internal/mails"
	"github.com/lukasdietrich/brieftaube/internal/recipients"
)

// AddressbookOptions configure the Addressbook.
type AddressbookOptions struct {
	Separator string
}

// AddressbookOptionsFromViper returns AddressbookOptions using the
// configuration from viper.
//
// `sep` separates the entries of recipient lists.
func AddressbookOptionsFromViper() AddressbookOptions {
	return AddressbookOptions{
		Separator: viper.GetString("sep"),
	}
}

// Addressbook is a registry to lookup mail addresses. Recipient identifiers
// are resolved to canonical mail addresses using a directory.
type Addressbook struct {
	directory directory.Directory
	opts      AddressbookOptions
}

// NewAddressbook creates a new Addressbook.
func NewAddressbook(directory directory.Directory, opts AddressbookOptions) *Addressbook {
	return &Addressbook{
		directory: directory,
		opts:      opts,
	}
}

// Lookup classifies the recipient list raw, resolves every recipient using the
// directory and removes all addresses not allowed by filter. The result is
// deduplicated and no address is both a primary and a carbon copy recipient.
func (a *Addressbook) Lookup(ctx context.Context, raw string, filter recipients.FilterList) (recipients.Classified, error) {
	classified, err := recipients.Classify(raw, a.opts.Separator)
	if err != nil {
		return recipients.Classified{}, err
	}

	log.DebugContext(ctx).
		Strs("to", classified.To).
		Strs("cc", classified.Cc).
		Msg("classified recipients")

	resolved, err := a.Resolve(ctx, classified)
	if err != nil {
		return recipients.Classified{}, err
	}

	resolved = recipients.Finalize(resolved)
	filtered := recipients.Finalize(filter.ApplyClassified(resolved))

	log.InfoContext(ctx).
		Int("classified", classified.Len()).
		Int("resolved", resolved.Len()).
		Int("allowed", filtered.Len()).
		Msg("recipients looked up")

	return filtered, nil
}

// Resolve replaces every recipient identifier with its canonical mail
// address. Identifiers unknown to the directory are dropped. A single session
// is used for both lists. If the directory fails, no partial result is
// returned.
func (a *Addressbook) Resolve(ctx context.Context, classified recipients.Classified) (recipients.Classified, error) {
	session, err := a.directory.Open(ctx)
	if err != nil {
		return recipients.Classified{}, err
	}

	defer func() {
		if err := session.Close(); err != nil {
			log.WarnContext(ctx).Err(err).Msg("could not close directory session")
		}
	}()

	to, err := resolveAll(log.WithList(ctx, "to"), session, classified.To)
	if err != nil {
		return recipients.Classified{}, err
	}

	cc, err := resolveAll(log.WithList(ctx, "cc"), session, classified.Cc)
	if err != nil {
		return recipients.Classified{}, err
	}

	return recipients.Classified{To: to, Cc: cc}, nil
}

// resolveAll resolves identifiers in order.
func resolveAll(ctx context.Context, session directory.Session, identifiers []string) ([]string, error) {
	resolved := make([]string, 0, len(identifiers))

	for _, identifier := range identifiers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", directory.ErrUnavailable, err)
		}

		ctx := log.WithIdentifier(ctx, identifier)

		mail, ok, err := resolve(ctx, session, identifier)
		if err != nil {
			return nil, err
		}

		if !ok {
			log.DebugContext(ctx).Msg("identifier unknown to the directory, dropping")
			continue
		}

		log.DebugContext(ctx).Str("mail", mail).Msg("identifier resolved")
		resolved = append(resolved, mail)
	}

	return resolved, nil
}

// resolve looks up identifier as a mail address first. If there is no match,
// the part before the first "@" is looked up as an account name.
func resolve(ctx context.Context, session directory.Session, identifier string) (string, bool, error) {
	mail, ok, err := session.Lookup(ctx, directory.AttributeMail, identifier)
	if err != nil || ok {
		return mail, ok, err
	}

	return session.Lookup(ctx, directory.AttributeAccountName, mails.LocalIdentifier(identifier))
}

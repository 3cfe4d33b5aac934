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

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/brieftaube/internal/log"
	"github.com/lukasdietrich/brieftaube/internal/mails"
)

// SESOptions configure the aws simple email service.
type SESOptions struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// SESOptionsFromViper returns SESOptions using the configuration from viper.
//
// `region` is the aws region of the service.
// `accesskey` and `secretkey` are static credentials. If either is empty, the
// default aws credential chain is used.
// `endpoint` overrides the service url.
func SESOptionsFromViper() SESOptions {
	return SESOptions{
		Region:    viper.GetString("region"),
		AccessKey: viper.GetString("accesskey"),
		SecretKey: viper.GetString("secretkey"),
		Endpoint:  viper.GetString("endpoint"),
	}
}

// SendEmailAPI is the subset of the sesv2 client used by SESCourier.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESCourier submits raw mails to the aws simple email service.
type SESCourier struct {
	client SendEmailAPI
}

// NewSESCourier creates a courier using the aws default configuration. The
// sdk retryer is replaced, so every request is attempted exactly once.
func NewSESCourier(ctx context.Context, opts SESOptions) (*SESCourier, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}),
	}

	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, awsconfig.WithBaseEndpoint(opts.Endpoint))
	}

	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load aws config: %w", ErrTransport, err)
	}

	return NewSESCourierWithClient(sesv2.NewFromConfig(awsCfg)), nil
}

// NewSESCourierWithClient creates a courier using client.
func NewSESCourierWithClient(client SendEmailAPI) *SESCourier {
	return &SESCourier{client: client}
}

// Send submits message as raw content. The recipients of the envelope are
// passed explicitly. There are no retries.
func (c *SESCourier) Send(ctx context.Context, envelope mails.Envelope, message []byte) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(envelope.From.String()),
		Destination: &types.Destination{
			ToAddresses: envelope.To,
			CcAddresses: envelope.Cc,
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{
				Data: message,
			},
		},
	}

	output, err := c.client.SendEmail(ctx, input)
	if err != nil {
		var rejected *types.MessageRejected

		return &TransportError{
			Permanent: errors.As(err, &rejected),
			Err:       fmt.Errorf("ses rejected message: %w", err),
		}
	}

	log.InfoContext(ctx).
		Str("messageId", aws.ToString(output.MessageId)).
		Msg("message submitted to ses")

	return nil
}

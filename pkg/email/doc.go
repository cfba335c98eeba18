// Package email delivers rendered transactional emails.
//
// Sender is implemented for Resend (the default), Postmark, Amazon SES v2
// and a development sender that writes messages to disk. NewSender picks one
// from Config, which is loaded from the environment:
//
//	EMAIL_PROVIDER   resend | postmark | ses | dev
//	EMAIL_FROM       "LaunchMVP <startup@seanchen.io>"
//	RESEND_API_KEY   Resend
//	POSTMARK_SERVER_TOKEN, POSTMARK_ACCOUNT_TOKEN
//	AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
//	EMAIL_DEV_DIR    output directory of the dev sender
//
// Usage:
//
//	sender, err := email.NewSender(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	id, err := sender.Send(ctx, email.Message{
//		To:      "jane@example.com",
//		Subject: "Welcome",
//		HTML:    html,
//		Tag:     "welcome",
//	})
//
// Senders validate messages first and return ErrInvalidMessage without
// contacting the provider. Provider failures are *ProviderError values,
// which match ErrFailedToSendEmail and carry the provider message.
// There is no retry: a failed send is reported to the caller once.
//
// Templates live in the templates subpackage.
package email

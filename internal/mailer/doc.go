// Package mailer provides outbound email delivery for the newsletter
// service. Each sender implements the subscription.Notifier contract and
// delivers a single transactional message per call.
//
// Three providers are supported:
//
//   - SES: AWS SES via the v2 SDK, for production delivery
//   - Postmark: the Postmark transactional API
//   - Dev: logs the message instead of sending, for local development
//
// New selects a sender from the mailer configuration.
package mailer

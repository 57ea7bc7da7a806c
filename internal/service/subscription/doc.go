// Package subscription implements the double opt-in subscription workflow.
//
// Registration validates the raw name and email, then persists a pending
// subscriber together with a single-use confirmation token in one atomic
// store operation, and finally asks the Notifier to deliver the confirmation
// link. Confirmation resolves a presented token back to its subscriber and
// flips the status to confirmed; redeeming the same token twice is a no-op.
//
// The service layer contains all business logic and depends on the Repository
// and Notifier interfaces defined in this package. It never imports net/http
// or database/sql. Repository implementations live in repository/postgres/
// and repository/memory/; Notifier implementations live in internal/mailer.
package subscription

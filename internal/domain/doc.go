// Package domain defines the core business types for the newsletter service.
//
// Types in this package are pure value objects with no database dependencies
// and no HTTP concerns. They are the shared language between handlers,
// services, and repositories.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON/DB tags are allowed (they're metadata, not behavior)
//   - Validating constructors are allowed (they're pure functions)
//   - Constants and enums belong here
//
// EmailAddress and DisplayName follow the constructed-valid pattern: the only
// way to obtain one is through its Parse function, so any instance that
// reaches a repository or mailer is already syntactically valid.
package domain

// Package submitter performs the actual application submission. The pipeline
// treats any implementation as an external collaborator: it either succeeds,
// after which the application is committed to the ledger, or fails, which is
// terminal for that listing within the run.
package submitter

import (
	"context"

	"jobpilot/internal/listing"
)

type Submitter interface {
	Submit(ctx context.Context, l *listing.Listing, resume, coverLetter string) error
}

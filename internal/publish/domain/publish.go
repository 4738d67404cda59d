// Package domain defines the entities of the publish flow.
package domain

// MaxReplyLength is the longest owner reply the platform accepts, in runes.
const MaxReplyLength = 4096

// State identifies a stage in the lifecycle of a publish attempt.
type State string

// Publish attempt states, in lifecycle order.
const (
	StateReceived        State = "received"
	StateValidated       State = "validated"
	StatePrecheckPassed  State = "precheck_passed"
	StatePrecheckSkipped State = "precheck_skipped"
	StatePublished       State = "published"
	StateRejected        State = "rejected"
	StateFailed          State = "failed"
)

// PublishInput carries a single publish attempt.
type PublishInput struct {
	// Token is the prefill token identifying the target review.
	Token string

	// ReplyText is the drafted reply to store on the platform.
	ReplyText string

	// Force skips the already-replied precheck for manual overrides. It does
	// not bypass input validation or identifier extraction.
	Force bool
}

// PublishResult is the outcome of a publish attempt that reached the write
// step, or skipped it in dry-run mode.
type PublishResult struct {
	// Comment is the reply text as stored by the platform. In dry-run mode it
	// is the would-be reply text.
	Comment string

	// UpdateTime is the platform timestamp of the write, empty in dry-run mode.
	UpdateTime string

	// DryRun reports that the write step was skipped by configuration.
	DryRun bool
}

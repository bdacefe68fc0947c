package entities

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Outcome classifies what happened to a single upload job.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSuccessUpdated
	OutcomeSkippedMissing
	OutcomeSkippedDirectory
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSuccessUpdated:
		return "success-updated"
	case OutcomeSkippedMissing:
		return "skipped-missing"
	case OutcomeSkippedDirectory:
		return "skipped-directory"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// UploadJob is one local file mapped to its remote location.
type UploadJob struct {
	LocalPath  string
	RemotePath string
	Message    string
}

// NewUploadJob builds the job for a local path. The remote path keeps the
// local layout with backslashes turned into forward slashes, so Windows and
// POSIX inputs land in the same place.
func NewUploadJob(localPath string) UploadJob {
	remotePath := strings.ReplaceAll(localPath, `\`, "/")
	return UploadJob{
		LocalPath:  localPath,
		RemotePath: remotePath,
		Message:    "Update " + remotePath,
	}
}

// RemoteFile is the payload of a single contents PUT.
type RemoteFile struct {
	Path    string
	Message string
	Content string // base64
	Branch  string
	SHA     string // blob SHA of the current remote version, empty on create
}

// EncodeContent returns the standard, unwrapped base64 form of data.
func EncodeContent(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// UploadResult is the recorded outcome of one job.
type UploadResult struct {
	Path    string
	Outcome Outcome
	Reason  string
}

// Succeeded reports whether the file reached the remote branch.
func (r UploadResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeSuccessUpdated
}

// Skipped reports whether the job was never attempted.
func (r UploadResult) Skipped() bool {
	return r.Outcome == OutcomeSkippedMissing || r.Outcome == OutcomeSkippedDirectory
}

// Status renders the short annotation printed after the path.
func (r UploadResult) Status() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return "OK"
	case OutcomeSuccessUpdated:
		return "OK (updated)"
	case OutcomeSkippedMissing:
		return "SKIP (not found)"
	case OutcomeSkippedDirectory:
		return "SKIP (directory)"
	default:
		return fmt.Sprintf("FAIL (%s)", r.Reason)
	}
}

// PushSummary aggregates the results of a whole run. Skips count as neither
// succeeded nor failed.
type PushSummary struct {
	Results   []UploadResult
	Succeeded int
	Failed    int
}

// Record appends a result and updates the counters.
func (s *PushSummary) Record(result UploadResult) {
	s.Results = append(s.Results, result)
	switch {
	case result.Succeeded():
		s.Succeeded++
	case result.Skipped():
	default:
		s.Failed++
	}
}

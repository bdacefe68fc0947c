package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/ghpush/internal/domain/entities"
	"github.com/rios0rios0/ghpush/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/ghpush/internal/infrastructure/repositories"
)

// AllFlag, when present in the file list, expands to every tracked file.
const AllFlag = "--all"

const defaultProvider = "github"

// Push is the interface for the push command.
type Push interface {
	Execute(ctx context.Context, opts PushOptions) (*entities.PushSummary, error)
}

// PushOptions holds runtime options for a single push run.
type PushOptions struct {
	Target   entities.Target
	Token    string
	Provider string // Registry name, defaults to github
	APIURL   string // Optional REST API base URL override
	WebURL   string // Optional browser host for the summary link
	WorkDir  string // Directory relative paths are resolved against, defaults to "."
	Files    []string
	All      bool
	Output   io.Writer
}

// uploadState tracks where a job is in the create-or-update exchange.
type uploadState int

const (
	stateInitial  uploadState = iota // first PUT, no SHA
	stateNeedsSHA                    // store answered 422, fetch the current blob SHA
	stateRetried                     // second PUT carrying the SHA
)

// PushCommand uploads local files one by one through a content repository.
type PushCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	trackedFiles     repositories.TrackedFilesRepository
}

// NewPushCommand creates a new PushCommand.
func NewPushCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	trackedFiles repositories.TrackedFilesRepository,
) *PushCommand {
	return &PushCommand{
		providerRegistry: providerRegistry,
		trackedFiles:     trackedFiles,
	}
}

// Execute resolves the file list and uploads every entry sequentially.
// Only configuration problems and a failed tracked-file listing are returned
// as errors; per-file problems are recorded in the summary.
func (it *PushCommand) Execute(ctx context.Context, opts PushOptions) (*entities.PushSummary, error) {
	if opts.Token == "" {
		return nil, entities.ErrMissingToken
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	providerName := opts.Provider
	if providerName == "" {
		providerName = defaultProvider
	}

	files, err := it.resolveFiles(ctx, workDir, opts)
	if err != nil {
		return nil, err
	}

	store, err := it.providerRegistry.Get(providerName, infraRepos.ProviderSettings{
		Token:  opts.Token,
		APIURL: opts.APIURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	fmt.Fprintf(out, "Pushing %d files to %s...\n\n", len(files), opts.Target.FullName())

	summary := &entities.PushSummary{}
	for _, file := range files {
		result := it.pushFile(ctx, store, opts.Target, workDir, file, out)
		summary.Record(result)
	}

	fmt.Fprintf(out, "\nComplete: %d uploaded, %d failed\n", summary.Succeeded, summary.Failed)
	fmt.Fprintln(out, opts.Target.HTMLURL(opts.WebURL))
	return summary, nil
}

// resolveFiles returns the effective job list, expanding the all-files request.
func (it *PushCommand) resolveFiles(ctx context.Context, workDir string, opts PushOptions) ([]string, error) {
	if !opts.All && !containsAllFlag(opts.Files) {
		return opts.Files, nil
	}

	files, err := it.trackedFiles.ListTrackedFiles(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("could not list git files: %w", err)
	}
	logger.Debugf("Expanded %s to %d tracked files", AllFlag, len(files))
	return files, nil
}

func containsAllFlag(files []string) bool {
	for _, f := range files {
		if f == AllFlag {
			return true
		}
	}
	return false
}

// pushFile classifies a local path and uploads it when it is a regular file.
func (it *PushCommand) pushFile(
	ctx context.Context,
	store repositories.ContentRepository,
	target entities.Target,
	workDir, path string,
	out io.Writer,
) entities.UploadResult {
	localPath := path
	if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workDir, path)
	}

	info, statErr := os.Stat(localPath)
	switch {
	case isMissing(statErr):
		return report(out, path, entities.UploadResult{Path: path, Outcome: entities.OutcomeSkippedMissing})
	case statErr == nil && info.IsDir():
		return report(out, path, entities.UploadResult{Path: path, Outcome: entities.OutcomeSkippedDirectory})
	}

	job := entities.NewUploadJob(path)
	fmt.Fprintf(out, ">> %s... ", job.RemotePath)

	result := it.upload(ctx, store, target, job, localPath, statErr)
	fmt.Fprintln(out, result.Status())
	return result
}

// isMissing reports whether stat failed because nothing exists at the path,
// including when a parent component is a regular file or a symlink loops.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}

func report(out io.Writer, path string, result entities.UploadResult) entities.UploadResult {
	fmt.Fprintf(out, ">> %s... %s\n", path, result.Status())
	return result
}

// upload runs the create-or-update exchange for one job: a plain PUT, and on
// a 422 one SHA lookup followed by exactly one retried PUT.
func (it *PushCommand) upload(
	ctx context.Context,
	store repositories.ContentRepository,
	target entities.Target,
	job entities.UploadJob,
	localPath string,
	statErr error,
) entities.UploadResult {
	failed := func(reason string) entities.UploadResult {
		return entities.UploadResult{Path: job.RemotePath, Outcome: entities.OutcomeFailed, Reason: reason}
	}

	if statErr != nil {
		return failed("read error: " + statErr.Error())
	}
	data, err := readFile(localPath)
	if err != nil {
		return failed("read error: " + err.Error())
	}

	file := entities.RemoteFile{
		Path:    job.RemotePath,
		Message: job.Message,
		Content: entities.EncodeContent(data),
		Branch:  target.Branch,
	}

	state := stateInitial
	lastStatus := 0
	for {
		switch state {
		case stateInitial, stateRetried:
			status, putErr := store.PutFile(ctx, target, file)
			if putErr != nil {
				return failed(putErr.Error())
			}
			logger.Debugf("PUT %s returned %d", job.RemotePath, status)
			lastStatus = status

			if isCommitted(status) {
				if state == stateRetried {
					return entities.UploadResult{Path: job.RemotePath, Outcome: entities.OutcomeSuccessUpdated}
				}
				return entities.UploadResult{Path: job.RemotePath, Outcome: entities.OutcomeSuccess}
			}
			if state == stateInitial && status == http.StatusUnprocessableEntity {
				state = stateNeedsSHA
				continue
			}
			return failed(strconv.Itoa(status))

		case stateNeedsSHA:
			sha, status, getErr := store.GetFileSHA(ctx, target, job.RemotePath)
			if getErr != nil {
				return failed(getErr.Error())
			}
			logger.Debugf("GET %s returned %d", job.RemotePath, status)
			if status != http.StatusOK || sha == "" {
				return failed(strconv.Itoa(lastStatus))
			}
			file.SHA = sha
			state = stateRetried
		}
	}
}

func isCommitted(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// readFile reads the whole file, holding the handle only for the read.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

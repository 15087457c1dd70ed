package main

import (
	"errors"

	"github.com/franz/softball-stats/internal/ingest"
	"github.com/franz/softball-stats/internal/util"
)

// Process exit codes
const (
	exitOK                = 0
	exitUsage             = 1
	exitValidation        = 2
	exitDuplicate         = 3
	exitStorage           = 4
	exitExportUnavailable = 5
)

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, util.ErrStorageUnavailable):
		return exitStorage
	case errors.Is(err, util.ErrExportTargetUnavailable):
		return exitExportUnavailable
	case errors.Is(err, util.ErrDuplicateGame):
		return exitDuplicate
	case util.IsValidationError(err):
		return exitValidation
	default:
		return exitUsage
	}
}

// worstError returns the most severe of errs, the first one on ties
func worstError(errs ...error) error {
	var worst error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if worst == nil || ingest.Severity(err) > ingest.Severity(worst) {
			worst = err
		}
	}
	return worst
}

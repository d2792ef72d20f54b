package retry

import (
	"runtime"
	"syscall"

	"github.com/cockroachdb/errors"
)

// Windows error codes returned while another process holds a file open.
const (
	winErrorAccessDenied     syscall.Errno = 5
	winErrorSharingViolation syscall.Errno = 32
	winErrorLockViolation    syscall.Errno = 33
)

// FileBusyClassifier treats "file in use" failures as transient.
type FileBusyClassifier struct {
	goos string
}

// NewFileBusyClassifier creates a classifier for the running platform.
func NewFileBusyClassifier() *FileBusyClassifier {
	return &FileBusyClassifier{goos: runtime.GOOS}
}

// IsTransient reports whether retrying err may succeed.
func (c *FileBusyClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}

	switch errno {
	case syscall.EBUSY, syscall.ETXTBSY, syscall.EAGAIN, syscall.EINTR:
		return true
	}

	if c.goos == "windows" {
		switch errno {
		case winErrorAccessDenied, winErrorSharingViolation, winErrorLockViolation:
			return true
		}
	}
	return false
}

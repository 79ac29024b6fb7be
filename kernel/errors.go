package kernel

import (
	"errors"
	"fmt"

	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/logsink"
)

// Domain sentinels, checkable with errors.Is against the *ferr.Error
// returned by each kernel (ferr.Error.Unwrap reaches these directly).
var (
	BucketError = errors.New("kernel: bucket_sum precondition violated")
	FuseError   = errors.New("kernel: fuse_coincidence precondition violated")
	VisionError = errors.New("kernel: DVS columnar flow precondition violated")
)

// logKernelError emits the error-level log spec §5 requires for kernel
// failures: the error's machine-readable code as a field, not just the
// message, so a log pipeline can aggregate on it.
func logKernelError(code, detail string) {
	logsink.L().Error().Str("code", code).Msg(detail)
}

func wrapBucket(detail string) error {
	logKernelError("kernel.bucket_error", detail)
	return ferr.New(ferr.KindKernel, "kernel.bucket_error", "", fmt.Errorf("%w: %s", BucketError, detail))
}

func wrapFuse(detail string) error {
	logKernelError("kernel.fuse_error", detail)
	return ferr.New(ferr.KindKernel, "kernel.fuse_error", "", fmt.Errorf("%w: %s", FuseError, detail))
}

func wrapVision(detail string) error {
	logKernelError("kernel.vision_error", detail)
	return ferr.New(ferr.KindKernel, "kernel.vision_error", "", fmt.Errorf("%w: %s", VisionError, detail))
}

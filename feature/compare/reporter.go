package compare

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reporter turns comparison outcomes into log entries.
type Reporter struct {
	logger *zap.Logger
}

// NewReporter creates a reporter writing to logger.
func NewReporter(logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{logger: logger}
}

// Start logs the beginning of a run.
func (r *Reporter) Start(opts Options, items int) {
	r.logger.Info("Start server mode test",
		zap.String("mode", string(opts.Mode)),
		zap.String("fetchtype", opts.Category),
		zap.Int("items", items),
	)
}

// Report logs one warning for a non-empty diff and nothing otherwise.
func (r *Reporter) Report(res Result) {
	req := res.Request
	if res.Diff.Empty() {
		r.logger.Debug("No difference", zap.String("key", req.Key))
		return
	}

	r.logger.Warn("There is a difference between old and new",
		zap.String("mode", string(req.Mode)),
		zap.String("fetchtype", req.Category),
		zap.String("key", req.Key),
		zap.Strings("args", []string{string(req.Mode), req.Category, req.Key}),
		zap.Object("diff", res.Diff),
	)

	if ce := r.logger.Check(zapcore.DebugLevel, "Detailed difference (-old +new)"); ce != nil {
		ce.Write(zap.String("key", req.Key), zap.String("report", TextDiff(res.Old, res.New)))
	}
}

// Fatal logs the error that ends the run.
func (r *Reporter) Fatal(err error) {
	var fe *FetchError
	switch {
	case errors.As(err, &fe) && fe.Kind == KindTransport:
		r.logger.Error("Failed to connect", zap.String("url", fe.URL), zap.Error(fe.Err))
	case errors.As(err, &fe):
		r.logger.Error("Failed to GET request", zap.String("url", fe.URL), zap.Error(fe.Err))
	case errors.Is(err, ErrListNotFound):
		r.logger.Error("Failed to find list path", zap.Error(err))
	default:
		r.logger.Error("Comparison aborted", zap.Error(err))
	}
}

package csvdump

import (
	"go.uber.org/zap"

	"lulog/internal/logdir"
)

// Dumper writes fields for one step and rank into the standard layout:
// arrays under matrix/, scalars under info/.
type Dumper struct {
	dir    logdir.StepDir
	logger *zap.Logger
	ready  bool
}

// NewDumper prepares the step directory. Directory creation is best effort;
// a failure is logged and later writes report false.
func NewDumper(base, step string, rank int, logger *zap.Logger) (*Dumper, error) {
	dir, err := logdir.NewStepDir(base, step, rank)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("step", step), zap.Int("rank", rank))
	ready := dir.Ensure()
	if !ready {
		logger.Debug("step directory not created", zap.String("path", dir.Path()))
	}
	return &Dumper{dir: dir, logger: logger, ready: ready}, nil
}

// Dir returns the step directory the dumper writes into.
func (d *Dumper) Dir() logdir.StepDir {
	return d.dir
}

// Ready reports whether the step directory was created.
func (d *Dumper) Ready() bool {
	return d.ready
}

func (d *Dumper) report(kind, field, path string, err error) bool {
	if err != nil {
		d.logger.Debug("dump failed",
			zap.String("kind", kind),
			zap.String("field", field),
			zap.String("path", path),
			zap.Error(err),
		)
		return false
	}
	d.logger.Debug("dumped", zap.String("kind", kind), zap.String("field", field))
	return true
}

// DumpMatrix writes data (every stride-th element) to matrix/<field>.csv.
func DumpMatrix[T Number](d *Dumper, field string, data []T, stride int) bool {
	path := d.dir.MatrixFile(field)
	return d.report("matrix", field, path, writeArray(path, data, len(data), stride))
}

// DumpMatrix3 writes three columns to matrix/<field>.csv.
func DumpMatrix3[T Number](d *Dumper, field string, a, b, c []T) bool {
	path := d.dir.MatrixFile(field)
	return d.report("matrix3", field, path, writeArray3(path, a, b, c, len(a)))
}

// DumpInfo writes a scalar to info/<field>.csv.
func DumpInfo[T Number](d *Dumper, field string, value T) bool {
	path := d.dir.InfoFile(field)
	return d.report("info", field, path, writeScalar(path, value))
}

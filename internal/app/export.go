package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	sharedDomain "github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/felixgeelhaar/taskflow/internal/tracking/infrastructure/dataset"
	"github.com/felixgeelhaar/taskflow/internal/tracking/infrastructure/ical"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"
)

// ErrUnknownFormat is returned for export formats other than json, yaml and ics.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportService writes the task collection as a JSON or YAML dataset or
// as an iCalendar deadline feed.
type ExportService struct {
	taskRepo task.Repository
	clock    sharedDomain.Clock
}

// NewExportService creates an ExportService.
func NewExportService(taskRepo task.Repository, clock sharedDomain.Clock) *ExportService {
	return &ExportService{taskRepo: taskRepo, clock: clock}
}

// Export writes every task in the given format to w.
func (s *ExportService) Export(ctx context.Context, w io.Writer, format string) error {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	now := s.clock.Now()

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		data, err := dataset.Encode(tasks, value_objects.DateOf(now))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML, "yml":
		data, err := dataset.EncodeYAML(tasks, value_objects.DateOf(now))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatICS, "ical":
		return ical.Export(ctx, w, tasks, now)
	default:
		return fmt.Errorf("%w: %q (use json, yaml or ics)", ErrUnknownFormat, format)
	}
}

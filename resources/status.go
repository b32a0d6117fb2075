package resources

import (
	"context"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

// Status reads service health and connection details. It never changes server state.
type Status struct {
	*core.EPResource
}

func (s *Status) get(ctx context.Context, operation string, segments ...string) (core.Record, error) {
	path, err := s.Path(segments...)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, s, operation, http.MethodGet, path, nil, nil)
}

func (s *Status) GetWithContext(ctx context.Context) (core.Record, error) {
	return s.get(ctx, "getting system status")
}

func (s *Status) Get() (core.Record, error) {
	return s.GetWithContext(s.Ctx())
}

func (s *Status) GetTypedWithContext(ctx context.Context) (*SystemStatus, error) {
	record, err := s.GetWithContext(ctx)
	if err != nil {
		return nil, err
	}
	status := &SystemStatus{}
	if err = record.Fill(status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *Status) GetTyped() (*SystemStatus, error) {
	return s.GetTypedWithContext(s.Ctx())
}

func (s *Status) MetricsWithContext(ctx context.Context) (*SystemMetrics, error) {
	record, err := s.get(ctx, "getting system metrics", "metrics")
	if err != nil {
		return nil, err
	}
	metrics := &SystemMetrics{}
	if err = record.Fill(metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *Status) Metrics() (*SystemMetrics, error) {
	return s.MetricsWithContext(s.Ctx())
}

func (s *Status) KafkaDetailsWithContext(ctx context.Context) (*KafkaDetails, error) {
	record, err := s.get(ctx, "getting Kafka details", "kafka")
	if err != nil {
		return nil, err
	}
	details := &KafkaDetails{}
	if err = record.Fill(details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *Status) KafkaDetails() (*KafkaDetails, error) {
	return s.KafkaDetailsWithContext(s.Ctx())
}

func (s *Status) JupyterDetailsWithContext(ctx context.Context) (core.Record, error) {
	return s.get(ctx, "getting Jupyter details", "jupyter")
}

func (s *Status) JupyterDetails() (core.Record, error) {
	return s.JupyterDetailsWithContext(s.Ctx())
}

// APIVersionWithContext returns the version reported in the status response.
func (s *Status) APIVersionWithContext(ctx context.Context) (string, error) {
	record, err := s.GetWithContext(ctx)
	if err != nil {
		return "", err
	}
	v, ok := core.APIVersionFromStatus(record)
	if !ok {
		return "", &core.ApiError{
			Operation: "getting API version",
			Detail:    "status response carries no version field",
			Body:      record.PrettyJson(),
		}
	}
	return v, nil
}

func (s *Status) APIVersion() (string, error) {
	return s.APIVersionWithContext(s.Ctx())
}

// CheckCompatibilityWithContext returns *core.VersionIncompatibleError when the
// API is older than core.MinimumAPIVersion.
func (s *Status) CheckCompatibilityWithContext(ctx context.Context) error {
	v, err := s.APIVersionWithContext(ctx)
	if err != nil {
		return err
	}
	return core.CheckVersionCompat(v, "")
}

func (s *Status) CheckCompatibility() error {
	return s.CheckCompatibilityWithContext(s.Ctx())
}

package animation

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/viewslot/pkg/dom"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// recordingProvider records span names and hands out no-op spans.
type recordingProvider struct {
	embedded.TracerProvider
	names *[]string
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return recordingTracer{names: p.names}
}

type recordingTracer struct {
	embedded.Tracer
	names *[]string
}

func (r recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	*r.names = append(*r.names, name)
	return noop.NewTracerProvider().Tracer("").Start(ctx, name, opts...)
}

func TestInstrumentCountsTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	var spans []string

	leave, resolveLeave := NewCompletion()
	inner := Func{
		EnterFunc: func(*dom.Node) *Completion { return Completed() },
		LeaveFunc: func(*dom.Node) *Completion { return leave },
	}
	a := Instrument(inner,
		WithRegistry(reg),
		WithTracerProvider(recordingProvider{names: &spans}),
	)

	el := dom.Element("li", dom.ID("row-1"))
	a.Enter(el)
	c := a.Leave(el)

	m := a.metrics
	if got := metricCounterValue(t, m.started.WithLabelValues("enter")); got != 1 {
		t.Errorf("started(enter) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.finished.WithLabelValues("enter", "success")); got != 1 {
		t.Errorf("finished(enter,success) = %v, want 1", got)
	}
	if got := metricGaugeValue(t, m.inFlight.WithLabelValues("leave")); got != 1 {
		t.Errorf("inFlight(leave) = %v, want 1", got)
	}

	resolveLeave(stderrors.New("interrupted"))
	if c.Err() == nil {
		t.Fatal("instrumented completion should carry the inner error")
	}
	if got := metricGaugeValue(t, m.inFlight.WithLabelValues("leave")); got != 0 {
		t.Errorf("inFlight(leave) = %v, want 0", got)
	}
	if got := metricCounterValue(t, m.finished.WithLabelValues("leave", "error")); got != 1 {
		t.Errorf("finished(leave,error) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.duration.WithLabelValues("leave")); got != 1 {
		t.Errorf("duration(leave) samples = %v, want 1", got)
	}

	if len(spans) != 2 || spans[0] != "viewslot.enter" || spans[1] != "viewslot.leave" {
		t.Errorf("spans = %v", spans)
	}
}

func TestInstrumentNilAnimator(t *testing.T) {
	a := Instrument(nil, WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	if !a.Enter(dom.Element("div")).Settled() {
		t.Error("nil inner animator should behave like None")
	}
}

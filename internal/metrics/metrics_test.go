package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestInstrumentCountsRequests(t *testing.T) {
	m := New("taskboard")
	h := m.Instrument("/api/tasks", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusCreated)
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	h(&ctx)
	h(&ctx)

	families, err := m.registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != "taskboard_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, total)
}

func TestNilMetricsPassThrough(t *testing.T) {
	var m *Metrics
	called := false
	m.Instrument("/x", func(*fasthttp.RequestCtx) { called = true })(&fasthttp.RequestCtx{})
	assert.True(t, called)
}

func TestHandlerExposesText(t *testing.T) {
	m := New("taskboard")
	m.Instrument("/health", func(*fasthttp.RequestCtx) {})(&fasthttp.RequestCtx{})

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/metrics")
	m.Handler()(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "taskboard_http_requests_total")
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package mediaendpoint

import (
	"time"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gc "gopkg.in/check.v1"

	"github.com/openhome/ohtopology/core/media"
)

type metricsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&metricsSuite{})

func (s *metricsSuite) TestCollectorRegisters(c *gc.C) {
	registry := prometheus.NewPedanticRegistry()
	c.Assert(registry.Register(NewMetricsCollector()), jc.ErrorIsNil)
}

func (s *metricsSuite) TestCollectorCounts(c *gc.C) {
	collector := NewMetricsCollector()

	collector.SessionCreated()
	collector.SessionCreated()
	collector.SessionDestroyed()
	collector.QueryStarted(media.QueryBrowse)
	collector.QueryStarted(media.QueryBrowse)
	collector.QueryStarted(media.QuerySearch)
	collector.QueryStale(media.QueryBrowse)
	collector.QuerySuperseded(media.QueryBrowse)
	collector.QueryInstalled(media.QuerySearch, 20*time.Millisecond)
	collector.EndpointFailed(OperationRead)
	collector.PageRead(10)
	collector.PageRead(5)

	c.Check(testutil.ToFloat64(collector.sessions), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.queries.WithLabelValues("browse")), gc.Equals, float64(2))
	c.Check(testutil.ToFloat64(collector.queries.WithLabelValues("search")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.staleResults.WithLabelValues("browse")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.supersededQuery.WithLabelValues("browse")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.failures.WithLabelValues("read")), gc.Equals, float64(1))
	c.Check(testutil.ToFloat64(collector.pages), gc.Equals, float64(2))
	c.Check(testutil.ToFloat64(collector.items), gc.Equals, float64(15))
	c.Check(testutil.CollectAndCount(collector.queryDuration), gc.Equals, 1)
}

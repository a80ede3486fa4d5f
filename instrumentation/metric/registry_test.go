// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestInMemoryRegistry_ExportAll(t *testing.T) {
	registry := NewRegistry()
	gauge := registry.NewGauge("hello")
	gauge.Add(1)

	gaugeValue := registry.ExportAll()["hello"].(gaugeExport)
	require.EqualValues(t, 1, gaugeValue.Value)
}

func TestInMemoryRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	text := registry.NewText("Version.Semantic", "v1.0.0")

	require.Equal(t, text, registry.Get("Version.Semantic"))
	require.Nil(t, registry.Get("Version.Commit"))
}

func TestInMemoryRegistry_StringListsAllMetrics(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("b.gauge").Update(7)
	registry.NewText("a.text", "x")
	registry.NewLatency("c.latency", time.Second)

	s := registry.String()

	require.Contains(t, s, "metric a.text: x\n")
	require.Contains(t, s, "metric b.gauge: 7\n")
	require.Contains(t, s, "metric c.latency: ")
}

// Copyright 2026 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/pagemalloc/unsafex/malloc"
)

func gather(t *testing.T, c prometheus.Collector) map[string]*dto.MetricFamily {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	mfs, err := reg.Gather()
	require.NoError(t, err)

	ret := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		ret[mf.GetName()] = mf
	}
	return ret
}

// classValue returns the value of the sample labelled size=size.
func classValue(t *testing.T, mf *dto.MetricFamily, size string) float64 {
	t.Helper()
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "size" && lp.GetValue() == size {
				if m.GetCounter() != nil {
					return m.GetCounter().GetValue()
				}
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("%s: no sample for size=%s", mf.GetName(), size)
	return 0
}

func TestCollector(t *testing.T) {
	a := malloc.New(nil)
	p1 := a.Alloc(20)
	a.Alloc(30)
	a.Free(p1)
	a.Alloc(5000)

	mfs := gather(t, NewCollector(a, prometheus.Labels{"allocator": "test"}))

	for _, name := range []string{
		"pagemalloc_class_pages_total",
		"pagemalloc_class_allocs_total",
		"pagemalloc_class_frees_total",
		"pagemalloc_class_inuse_chunks",
	} {
		require.Contains(t, mfs, name)
		assert.Len(t, mfs[name].GetMetric(), malloc.NumClasses, name)
	}

	assert.Equal(t, float64(1), classValue(t, mfs["pagemalloc_class_pages_total"], "32"))
	assert.Equal(t, float64(2), classValue(t, mfs["pagemalloc_class_allocs_total"], "32"))
	assert.Equal(t, float64(1), classValue(t, mfs["pagemalloc_class_frees_total"], "32"))
	assert.Equal(t, float64(1), classValue(t, mfs["pagemalloc_class_inuse_chunks"], "32"))
	assert.Equal(t, float64(0), classValue(t, mfs["pagemalloc_class_pages_total"], "2048"))

	require.Contains(t, mfs, "pagemalloc_large_objects")
	assert.Equal(t, float64(1), mfs["pagemalloc_large_objects"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, float64(2*malloc.PageSize), mfs["pagemalloc_large_bytes"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, float64(3*malloc.PageSize), mfs["pagemalloc_mapped_bytes_total"].GetMetric()[0].GetCounter().GetValue())

	lbl := mfs["pagemalloc_large_objects"].GetMetric()[0].GetLabel()
	require.Len(t, lbl, 1)
	assert.Equal(t, "allocator", lbl[0].GetName())
	assert.Equal(t, "test", lbl[0].GetValue())
}

func TestCollectorDefault(t *testing.T) {
	c := NewCollector(nil, nil)
	assert.Same(t, malloc.Default(), c.a)
	mfs := gather(t, c)
	assert.Len(t, mfs, 7)
}

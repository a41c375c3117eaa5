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

// Package metrics exports malloc.Allocator counters to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudwego/pagemalloc/unsafex/malloc"
)

const namespace = "pagemalloc"

// Collector is a prometheus.Collector reading an Allocator's Stats on every scrape.
type Collector struct {
	a *malloc.Allocator

	pages        *prometheus.Desc
	allocs       *prometheus.Desc
	frees        *prometheus.Desc
	inuse        *prometheus.Desc
	largeObjects *prometheus.Desc
	largeBytes   *prometheus.Desc
	mappedBytes  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector for a. A nil a means malloc.Default().
func NewCollector(a *malloc.Allocator, constLabels prometheus.Labels) *Collector {
	if a == nil {
		a = malloc.Default()
	}
	classDesc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "class", name),
			help, []string{"size"}, constLabels,
		)
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", name),
			help, nil, constLabels,
		)
	}
	return &Collector{
		a:            a,
		pages:        classDesc("pages_total", "Pages carved for the size class."),
		allocs:       classDesc("allocs_total", "Chunks handed out from the size class."),
		frees:        classDesc("frees_total", "Chunks returned to the size class."),
		inuse:        classDesc("inuse_chunks", "Chunks of the size class currently in use."),
		largeObjects: desc("large_objects", "Live large objects."),
		largeBytes:   desc("large_bytes", "Bytes mapped for live large objects."),
		mappedBytes:  desc("mapped_bytes_total", "Bytes ever mapped from the OS."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pages
	ch <- c.allocs
	ch <- c.frees
	ch <- c.inuse
	ch <- c.largeObjects
	ch <- c.largeBytes
	ch <- c.mappedBytes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.a.Stats()
	for _, cs := range s.Classes {
		size := strconv.Itoa(cs.Size)
		ch <- prometheus.MustNewConstMetric(c.pages, prometheus.CounterValue, float64(cs.Pages), size)
		ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(cs.Allocs), size)
		ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(cs.Frees), size)
		ch <- prometheus.MustNewConstMetric(c.inuse, prometheus.GaugeValue, float64(cs.InUse()), size)
	}
	ch <- prometheus.MustNewConstMetric(c.largeObjects, prometheus.GaugeValue, float64(s.LargeObjects))
	ch <- prometheus.MustNewConstMetric(c.largeBytes, prometheus.GaugeValue, float64(s.LargeBytes))
	ch <- prometheus.MustNewConstMetric(c.mappedBytes, prometheus.CounterValue, float64(s.MappedBytes))
}

package status

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Point is one metric data point with its attributes.
type Point struct {
	Attributes map[string]string `json:"attributes,omitempty"`
	Value      float64           `json:"value"`
}

// Metric is a named instrument and its current points.
type Metric struct {
	Scope  string  `json:"scope"`
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// flatten reduces collected OTel data to sums and gauges; histograms are skipped.
func flatten(rm metricdata.ResourceMetrics) []Metric {
	out := make([]Metric, 0)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			var points []Point
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				points = intPoints(data.DataPoints)
			case metricdata.Sum[float64]:
				points = floatPoints(data.DataPoints)
			case metricdata.Gauge[int64]:
				points = intPoints(data.DataPoints)
			case metricdata.Gauge[float64]:
				points = floatPoints(data.DataPoints)
			default:
				continue
			}
			out = append(out, Metric{Scope: sm.Scope.Name, Name: m.Name, Points: points})
		}
	}
	return out
}

func intPoints(dps []metricdata.DataPoint[int64]) []Point {
	out := make([]Point, len(dps))
	for i, dp := range dps {
		out[i] = Point{Attributes: attrs(dp.Attributes), Value: float64(dp.Value)}
	}
	return out
}

func floatPoints(dps []metricdata.DataPoint[float64]) []Point {
	out := make([]Point, len(dps))
	for i, dp := range dps {
		out[i] = Point{Attributes: attrs(dp.Attributes), Value: dp.Value}
	}
	return out
}

func attrs(set attribute.Set) map[string]string {
	if set.Len() == 0 {
		return nil
	}
	out := make(map[string]string, set.Len())
	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

package stopgo

import "time"

type timeSpan struct{ start, stop time.Time }

// isolateTrips builds trip intervals as the complement of the stop
// intervals within the trace's observed time span (spec.md §4.14): the gap
// between consecutive stops, plus a leading trip if the trace starts before
// the first stop and a trailing trip if it ends after the last stop.
func isolateTrips(tr *trace, stops []StopInterval) []TripInterval {
	if tr.n == 0 {
		return nil
	}

	if len(stops) == 0 {
		return []TripInterval{{
			Start:           tr.ts[0],
			Stop:            tr.ts[tr.n-1],
			DurationSeconds: tr.ts[tr.n-1].Sub(tr.ts[0]).Seconds(),
		}}
	}

	var spans []timeSpan
	for i := 0; i+1 < len(stops); i++ {
		spans = append(spans, timeSpan{stops[i].Stop, stops[i+1].Start})
	}

	if tr.ts[0].Before(stops[0].Start) {
		spans = append(spans, timeSpan{tr.ts[0], stops[0].Start})
	}
	last := stops[len(stops)-1]
	if tr.ts[tr.n-1].After(last.Stop) {
		spans = append(spans, timeSpan{last.Stop, tr.ts[tr.n-1]})
	}

	sortSpansByStart(spans)

	trips := make([]TripInterval, len(spans))
	for i, s := range spans {
		trips[i] = TripInterval{Start: s.start, Stop: s.stop, DurationSeconds: s.stop.Sub(s.start).Seconds()}
	}
	return trips
}

func sortSpansByStart(spans []timeSpan) {
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start.Before(spans[j-1].start); j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
}

// tripSamples collects, for each trip, the labelled samples timestamped
// within [trip.Start, trip.Stop].
func tripSamples(trips []TripInterval, samples []LabelledSample) [][]LabelledSample {
	out := make([][]LabelledSample, len(trips))
	for i, t := range trips {
		for _, s := range samples {
			if s.Timestamp.Before(t.Start) || s.Timestamp.After(t.Stop) {
				continue
			}
			out[i] = append(out[i], s)
		}
	}
	return out
}

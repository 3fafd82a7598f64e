package stopgo

// Classify runs the full stop/go pipeline over a sequence of samples: it
// ingests and de-duplicates the samples, computes each of the six scoring
// methods, fuses them into a per-sample decision, aggregates consecutive
// stop decisions into stop intervals, filters out intervals that look like
// GPS noise, and isolates the complementary trip intervals.
//
// Classify never returns an error: configuration problems and input-length
// failures are reported through Summary so a caller processing many traces
// in a batch doesn't need per-call error handling.
func Classify(samples []Sample, cfg Config) ClassificationResult {
	if err := cfg.Validate(); err != nil {
		return failure(err, len(samples))
	}

	tr, err := ingest(samples, cfg)
	if err != nil {
		return failure(err, len(samples))
	}

	computeAttributes(tr)

	motion, certain := computeMotion(tr, cfg)
	rdr := computeRDR(tr, cfg)
	ba := computeBA(tr, cfg)
	seda := computeSEDA(tr, cfg)
	isa := computeISA(tr, cfg)
	mda := computeMDA(tr, certain, cfg)

	fused := fuse(tr, cfg, motion, certain, rdr, ba, seda, isa, mda)

	labelled := make([]LabelledSample, 0, tr.n)
	for i := 0; i < tr.n; i++ {
		overall, ok := fused[i].Overall.Get()
		if !ok {
			continue
		}
		labelled = append(labelled, LabelledSample{
			Index:     tr.origIndex[i],
			Timestamp: tr.ts[i],
			X:         tr.x[i],
			Y:         tr.y[i],
			Scores: ScoreVector{
				Motion: motion[i],
				RDR:    rdr[i],
				BA:     ba[i],
				SEDA:   seda[i],
				ISA:    isa[i],
				MDA:    mda[i],
			},
			OverallScore: overall,
			IsStop:       fused[i].IsStop,
			Confidence:   fused[i].Confidence,
		})
	}

	stops := aggregate(tr, fused)
	if len(stops) > 0 {
		stops = filterOutliers(tr, stops, cfg)
	}

	trips := isolateTrips(tr, stops)
	tripSamplesByTrip := tripSamples(trips, labelled)

	return ClassificationResult{
		Stops:       stops,
		Trips:       trips,
		Samples:     labelled,
		TripSamples: tripSamplesByTrip,
		Summary: Summary{
			TotalPoints: len(samples),
			TotalStops:  len(stops),
			TotalTrips:  len(trips),
			Success:     true,
		},
	}
}

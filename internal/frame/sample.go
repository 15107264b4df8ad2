package frame

// Sample is the per-frame record kept by runs and fed to metrics.
type Sample struct {
	Index      int
	Time       float64
	DT         float64
	FPS        float64
	FPSValid   bool
	Population int
}

// NewSample derives the frame rate from dt.
func NewSample(index int, ts, dt float64, population int) Sample {
	fps, ok := Rate(dt)
	return Sample{
		Index:      index,
		Time:       ts,
		DT:         dt,
		FPS:        fps,
		FPSValid:   ok,
		Population: population,
	}
}

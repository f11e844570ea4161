package stats

// Quadrant labels a platform's place on the volume/density matrix.
type Quadrant string

const (
	HighVolumeHighQuality Quadrant = "high volume / high quality"
	HighVolumeLowQuality  Quadrant = "high volume / low quality"
	LowVolumeHighQuality  Quadrant = "low volume / high quality"
	LowVolumeLowQuality   Quadrant = "low volume / low quality"
)

// Positioning places one platform relative to the mean of all platforms.
type Positioning struct {
	Platform    string   `json:"platform"`
	Volume      int      `json:"volume"`
	Density     float64  `json:"density"`
	MeanVolume  float64  `json:"mean_volume"`
	MeanDensity float64  `json:"mean_density"`
	Quadrant    Quadrant `json:"quadrant"`
}

// Position computes the volume/density matrix. A value equal to the mean
// counts as high.
func Position(all []Stats) []Positioning {
	if len(all) == 0 {
		return nil
	}
	var volume, density float64
	for _, s := range all {
		volume += float64(s.CatalogSize)
		density += s.Density
	}
	meanVolume := volume / float64(len(all))
	meanDensity := density / float64(len(all))

	out := make([]Positioning, len(all))
	for i, s := range all {
		highVolume := float64(s.CatalogSize) >= meanVolume
		highQuality := s.Density >= meanDensity
		var q Quadrant
		switch {
		case highVolume && highQuality:
			q = HighVolumeHighQuality
		case highVolume:
			q = HighVolumeLowQuality
		case highQuality:
			q = LowVolumeHighQuality
		default:
			q = LowVolumeLowQuality
		}
		out[i] = Positioning{
			Platform:    s.Platform,
			Volume:      s.CatalogSize,
			Density:     s.Density,
			MeanVolume:  meanVolume,
			MeanDensity: meanDensity,
			Quadrant:    q,
		}
	}
	return out
}

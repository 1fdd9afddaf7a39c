package fetch

const bytesPerMB = 1024 * 1024

// Progress is the transfer state passed to a ProgressFunc. It is rebuilt on
// every call and not retained after the download finishes.
type Progress struct {
	Chunks     int   // chunks received so far
	ChunkSize  int   // size of the read buffer
	Downloaded int64 // bytes written to disk so far
	Total      int64 // expected size, 0 when the server did not report one
}

// ProgressFunc is called once before the first chunk and once after every chunk.
type ProgressFunc func(p Progress)

// Percent returns the completed percentage, or 0 when the total is unknown.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Downloaded) / float64(p.Total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DownloadedMB returns the bytes downloaded so far in megabytes.
func (p Progress) DownloadedMB() float64 {
	return ToMB(p.Downloaded)
}

// TotalMB returns the expected size in megabytes.
func (p Progress) TotalMB() float64 {
	return ToMB(p.Total)
}

// ToMB converts a byte count to megabytes.
func ToMB(n int64) float64 {
	return float64(n) / bytesPerMB
}

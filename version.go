package ubiqgcm

const (
	Version = "1.0.0"
)

package domain

// FormatLabel é a categoria de formato do criativo de um anúncio
type FormatLabel string

const (
	FormatImage     FormatLabel = "IMAGE"
	FormatVideo     FormatLabel = "VIDEO"
	FormatCarousel  FormatLabel = "CAROUSEL"
	FormatInstagram FormatLabel = "INSTAGRAM"
	FormatUnknown   FormatLabel = "UNKNOWN"
)

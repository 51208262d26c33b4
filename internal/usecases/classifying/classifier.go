package classifying

import (
	"strings"

	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

// Palavras-chave no nome do anúncio usadas como último recurso antes de
// UNKNOWN, na ordem em que são testadas
var nameKeywords = []struct {
	token string
	label domain.FormatLabel
}{
	{"video", domain.FormatVideo},
	{"vid", domain.FormatVideo},
	{"carousel", domain.FormatCarousel},
	{"carrusel", domain.FormatCarousel},
	{"hook", domain.FormatVideo},
}

// Classify deriva o rótulo de formato de um criativo. A ordem dos testes é um
// contrato de comportamento: reordenar muda o resultado para criativos
// ambíguos (um criativo com video_id e image_url é VIDEO, não IMAGE)
func Classify(creative *metadomain.CreativeInfo, adName string) domain.FormatLabel {
	if creative != nil {
		if creative.ObjectType != "" {
			return domain.FormatLabel(strings.ToUpper(creative.ObjectType))
		}

		if creative.VideoID != "" {
			return domain.FormatVideo
		}

		if creative.HasStoryVideo() {
			return domain.FormatVideo
		}

		if creative.HasCarouselIndicator() {
			return domain.FormatCarousel
		}

		if creative.ImageURL != "" {
			return domain.FormatImage
		}

		// Um permalink do Instagram pode apontar para imagem, vídeo ou
		// carrossel; o rótulo não desambigua
		if creative.InstagramPermalinkURL != "" {
			return domain.FormatInstagram
		}
	}

	return classifyByName(adName)
}

// classifyByName faz a varredura case-insensitive de palavras-chave no nome
func classifyByName(adName string) domain.FormatLabel {
	name := strings.ToLower(adName)

	for _, keyword := range nameKeywords {
		if strings.Contains(name, keyword.token) {
			return keyword.label
		}
	}

	return domain.FormatUnknown
}

// MediaURL escolhe a melhor URL de mídia disponível no criativo para anexar ao
// registro diário
func MediaURL(creative *metadomain.CreativeInfo) *string {
	if creative == nil {
		return nil
	}

	candidates := []string{
		creative.ImageURL,
		creative.InstagramPermalinkURL,
		creative.ThumbnailURL,
	}

	for _, candidate := range candidates {
		if candidate != "" {
			url := candidate
			return &url
		}
	}

	return nil
}

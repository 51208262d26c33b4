package classifying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/insights-pipeline/internal/domain"
)

func TestClassify_Precedencia(t *testing.T) {
	tests := []struct {
		name     string
		creative *metadomain.CreativeInfo
		adName   string
		expected domain.FormatLabel
	}{
		{
			name:     "object_type vence tudo",
			creative: &metadomain.CreativeInfo{ObjectType: "share", VideoID: "v1", ImageURL: "http://img"},
			expected: domain.FormatLabel("SHARE"),
		},
		{
			name:     "video_id vence image_url",
			creative: &metadomain.CreativeInfo{VideoID: "v1", ImageURL: "http://img"},
			expected: domain.FormatVideo,
		},
		{
			name: "video no story spec",
			creative: &metadomain.CreativeInfo{
				ObjectStorySpec: &metadomain.ObjectStorySpec{
					VideoData: &metadomain.VideoData{VideoID: "v2"},
				},
			},
			expected: domain.FormatVideo,
		},
		{
			name: "anexos filhos indicam carrossel",
			creative: &metadomain.CreativeInfo{
				ImageURL: "http://img",
				ObjectStorySpec: &metadomain.ObjectStorySpec{
					LinkData: &metadomain.LinkData{
						ChildAttachments: []metadomain.ChildAttachment{{Link: "http://a"}, {Link: "http://b"}},
					},
				},
			},
			expected: domain.FormatCarousel,
		},
		{
			name: "flag de multi-share indica carrossel",
			creative: &metadomain.CreativeInfo{
				ObjectStorySpec: &metadomain.ObjectStorySpec{
					LinkData: &metadomain.LinkData{MultiShareOptIn: true},
				},
			},
			expected: domain.FormatCarousel,
		},
		{
			name:     "apenas image_url",
			creative: &metadomain.CreativeInfo{ImageURL: "http://img"},
			expected: domain.FormatImage,
		},
		{
			name:     "apenas permalink do instagram",
			creative: &metadomain.CreativeInfo{InstagramPermalinkURL: "http://insta"},
			expected: domain.FormatInstagram,
		},
		{
			name:     "criativo vazio cai no nome",
			creative: &metadomain.CreativeInfo{},
			adName:   "Campanha VIDEO remarketing",
			expected: domain.FormatVideo,
		},
		{
			name:     "sem criativo cai no nome",
			creative: nil,
			adName:   "ad carrusel setembro",
			expected: domain.FormatCarousel,
		},
		{
			name:     "hook no nome vira video",
			creative: nil,
			adName:   "Hook 03 oferta",
			expected: domain.FormatVideo,
		},
		{
			name:     "nada reconhecido vira unknown",
			creative: nil,
			adName:   "Campanha institucional",
			expected: domain.FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.creative, tt.adName))
		})
	}
}

func TestMediaURL(t *testing.T) {
	t.Run("prefere image_url", func(t *testing.T) {
		creative := &metadomain.CreativeInfo{
			ImageURL:              "http://img",
			InstagramPermalinkURL: "http://insta",
			ThumbnailURL:          "http://thumb",
		}

		url := MediaURL(creative)
		assert.NotNil(t, url)
		assert.Equal(t, "http://img", *url)
	})

	t.Run("cai para permalink e thumbnail", func(t *testing.T) {
		url := MediaURL(&metadomain.CreativeInfo{ThumbnailURL: "http://thumb"})
		assert.NotNil(t, url)
		assert.Equal(t, "http://thumb", *url)
	})

	t.Run("sem midia retorna nil", func(t *testing.T) {
		assert.Nil(t, MediaURL(&metadomain.CreativeInfo{}))
		assert.Nil(t, MediaURL(nil))
	})
}

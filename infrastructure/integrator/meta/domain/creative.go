package metadomain

// CreativeInfo expõe os campos crus do criativo necessários para a
// classificação de formato. A política de classificação fica centralizada em
// um único lugar (usecases/classifying); aqui não há rótulo pré-calculado
type CreativeInfo struct {
	ID                    string           `json:"id"`
	ObjectType            string           `json:"object_type"`
	VideoID               string           `json:"video_id"`
	ImageURL              string           `json:"image_url"`
	ThumbnailURL          string           `json:"thumbnail_url"`
	InstagramPermalinkURL string           `json:"instagram_permalink_url"`
	ObjectStorySpec       *ObjectStorySpec `json:"object_story_spec,omitempty"`
}

// ObjectStorySpec é o spec aninhado do criativo (post de página, video data,
// carrossel de anexos filhos)
type ObjectStorySpec struct {
	VideoData *VideoData `json:"video_data,omitempty"`
	LinkData  *LinkData  `json:"link_data,omitempty"`
}

type VideoData struct {
	VideoID string `json:"video_id"`
}

type LinkData struct {
	ImageHash        string            `json:"image_hash,omitempty"`
	ChildAttachments []ChildAttachment `json:"child_attachments,omitempty"`
	MultiShareOptIn  bool              `json:"multi_share_optimized,omitempty"`
}

type ChildAttachment struct {
	Link      string `json:"link,omitempty"`
	ImageHash string `json:"image_hash,omitempty"`
	VideoID   string `json:"video_id,omitempty"`
}

// HasStoryVideo retorna verdadeiro quando o story spec aninhado contém vídeo
func (c *CreativeInfo) HasStoryVideo() bool {
	return c != nil && c.ObjectStorySpec != nil &&
		c.ObjectStorySpec.VideoData != nil &&
		c.ObjectStorySpec.VideoData.VideoID != ""
}

// HasCarouselIndicator retorna verdadeiro quando o criativo tem anexos filhos
// ou a flag de multi-share, indicadores de carrossel
func (c *CreativeInfo) HasCarouselIndicator() bool {
	if c == nil || c.ObjectStorySpec == nil || c.ObjectStorySpec.LinkData == nil {
		return false
	}

	return len(c.ObjectStorySpec.LinkData.ChildAttachments) > 0 ||
		c.ObjectStorySpec.LinkData.MultiShareOptIn
}

// AdWithCreative é a resposta da busca em lote de criativos por anúncio
type AdWithCreative struct {
	ID       string        `json:"id"`
	Creative *CreativeInfo `json:"creative,omitempty"`
}

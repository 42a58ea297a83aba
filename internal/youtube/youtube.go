// Package youtube lists per-section news channels. Without a data API
// integration the entries are static placeholders the front end can embed.
package youtube

import (
	"fmt"
	"time"
)

type Channel struct {
	ID   string
	Name string
}

type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Channel     string    `json:"channel"`
	Thumbnail   string    `json:"thumbnail"`
	EmbedURL    string    `json:"embedUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}

type VideoList struct {
	Section string  `json:"section"`
	Videos  []Video `json:"videos"`
	Total   int     `json:"total"`
}

type Service struct {
	channels map[string][]Channel
}

func NewService() *Service {
	return &Service{
		channels: map[string][]Channel{
			"world": {
				{ID: "BBC", Name: "BBC News"},
				{ID: "CNN", Name: "CNN"},
			},
			"kr": {
				{ID: "KBS", Name: "KBS News"},
				{ID: "MBC", Name: "MBC News"},
			},
		},
	}
}

// GetVideos returns the channel lineup for a section, falling back to the
// world lineup like the feed aggregator does.
func (s *Service) GetVideos(section string) *VideoList {
	channels, ok := s.channels[section]
	if !ok {
		channels = s.channels["world"]
	}

	now := time.Now()
	videos := make([]Video, 0, len(channels))
	for i, ch := range channels {
		videos = append(videos, Video{
			ID:          fmt.Sprintf("video_%s_%d", section, i),
			Title:       "Latest from " + ch.Name,
			Channel:     ch.Name,
			Thumbnail:   "https://via.placeholder.com/480x360",
			EmbedURL:    "https://www.youtube.com/embed/live_stream?channel=" + ch.ID,
			PublishedAt: now,
		})
	}

	return &VideoList{Section: section, Videos: videos, Total: len(videos)}
}

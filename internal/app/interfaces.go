package app

import "github.com/llehouerou/sift/internal/mpris"

// StatusPublisher receives the player status after every update.
// *mpris.Adapter implements it.
type StatusPublisher interface {
	Update(mpris.Status)
}

// Announcer shows a now-playing notification. *notify.NowPlaying implements it.
type Announcer interface {
	Announce(title, artist, album, fallback string) error
}

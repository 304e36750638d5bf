package app

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/sift/internal/config"
	"github.com/llehouerou/sift/internal/dispatch"
	"github.com/llehouerou/sift/internal/errmsg"
	"github.com/llehouerou/sift/internal/keymap"
	"github.com/llehouerou/sift/internal/navigator"
	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/player"
	"github.com/llehouerou/sift/internal/store"
	"github.com/llehouerou/sift/internal/track"
	"github.com/llehouerou/sift/internal/ui/tracklist"
)

// Deps are the collaborators the model is built from. Status and Announcer
// may be nil.
type Deps struct {
	Config    *config.Config
	Backend   player.Backend
	Store     store.Interface
	Status    StatusPublisher
	Announcer Announcer
	Paths     []string // initial track list
	Source    string   // header label for Paths
}

// session is the state the dispatcher hooks write to. It sits behind a
// pointer so the hooks keep working on copies of Model.
type session struct {
	quit    bool
	changed []*track.Track
}

// Model is the root application model.
type Model struct {
	cfg    *config.Config
	vocab  *track.Vocabulary
	keys   *keymap.Table
	nav    *navigator.Navigator
	ctrl   *playback.Controller
	disp   *dispatch.Dispatcher
	sub    *playback.Subscription
	store  store.Interface
	status StatusPublisher
	notify Announcer
	sess   *session

	tracks  tracklist.Model
	help    help.Model
	helpMap keymap.HelpMap
	tagKeys map[string]string

	source  string
	info    *player.Info
	errMsg  string
	loadErr string
	width   int
	height  int
}

// New builds the model and loads the initial track list.
func New(d Deps) (Model, error) {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sess := &session{}
	m := Model{
		cfg:     cfg,
		vocab:   cfg.Vocabulary(),
		keys:    cfg.Keys(),
		ctrl:    playback.New(d.Backend, playback.WithPollInterval(cfg.PollInterval)),
		store:   d.Store,
		status:  d.Status,
		notify:  d.Announcer,
		sess:    sess,
		tracks:  tracklist.New(),
		help:    help.New(),
		helpMap: cfg.Keys().Help(),
		tagKeys: cfg.Keys().TagKeys(),
	}
	if m.store == nil {
		m.store = store.NewMock()
	}
	m.ctrl.SetVolume(float64(cfg.Volume) / 100)
	m.sub = m.ctrl.Subscribe()
	m.nav = navigator.New(nil)

	disp, err := dispatch.New(m.keys, m.nav, m.ctrl, dispatch.Hooks{
		Quit:    func() { sess.quit = true },
		Changed: func(t *track.Track) { sess.changed = append(sess.changed, t) },
	})
	if err != nil {
		return Model{}, fmt.Errorf("build dispatcher: %w", err)
	}
	m.disp = disp

	m.setList(d.Paths, d.Source)
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.publish()
	return nil
}

// Close stops playback and releases the backend. The store is owned by the
// caller.
func (m Model) Close() {
	m.ctrl.Close()
}

// setList replaces the track list, keeping whatever is loaded in the
// controller. Stored marks are applied to the new tracks.
func (m *Model) setList(paths []string, source string) {
	list := track.Build(paths, m.vocab)
	if err := m.store.Hydrate(list); err != nil {
		log.Warn().Err(err).Msg("hydrate track list")
		m.errMsg = errmsg.Format(errmsg.OpFolderLoad, err)
	}
	m.nav.Reset(list)
	m.tracks.Reset()
	if source == "" {
		source = sourceLabel(paths)
	}
	m.source = source
	log.Info().Int("tracks", list.Len()).Str("source", source).Msg("track list loaded")
}

// sourceLabel names a list by its folder when every file shares one.
func sourceLabel(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	dir := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		if filepath.Dir(p) != dir {
			return fmt.Sprintf("%d files", len(paths))
		}
	}
	return dir
}

// List returns the current track list.
func (m Model) List() *track.List { return m.nav.List() }

// Navigator returns the selection.
func (m Model) Navigator() *navigator.Navigator { return m.nav }

// Controller returns the playback controller.
func (m Model) Controller() *playback.Controller { return m.ctrl }

// Err returns the message on the error line.
func (m Model) Err() string { return m.errMsg }

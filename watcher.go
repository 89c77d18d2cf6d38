package appcache

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/appcacheshim/appcache/gc"
	"github.com/appcacheshim/appcache/installer"
	"github.com/appcacheshim/appcache/store"
)

// Watcher runs one background poll loop per tracked manifest URL — the Go
// analog of the browser's automatic update check "whenever the user
// navigates to a page associated with [a] cache" (spec.md §4.3), done here
// on a fixed interval instead of being tied to a navigation event, since
// a gateway process has no notion of the user navigating.
type Watcher struct {
	db       *store.DB
	inst     *installer.Installer
	urls     []string
	interval time.Duration
	log      zerolog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher constructs a Watcher for the given manifest URLs. interval
// defaults to one minute if non-positive.
func NewWatcher(db *store.DB, client *http.Client, urls []string, interval time.Duration, log zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Watcher{
		db:       db,
		inst:     &installer.Installer{DB: db, Client: client, Log: log},
		urls:     urls,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
	}
}

// Start launches one poll goroutine per manifest URL, performing an
// immediate install attempt before settling into its ticker.
func (wch *Watcher) Start() {
	for _, u := range wch.urls {
		wch.wg.Add(1)
		go wch.pollLoop(u)
	}
}

// Stop signals every poll goroutine to exit and waits for them to finish.
func (wch *Watcher) Stop() {
	close(wch.stop)
	wch.wg.Wait()
}

// ScheduleUpdate eagerly re-polls manifestURL after delay, independent of
// its regular ticker — the handler for an origin's `Cache-Update` response
// header (pkg/cache-update, repurposed from HTTP cache invalidation to
// manifest re-polling).
func (wch *Watcher) ScheduleUpdate(manifestURL string, delay time.Duration) {
	log := wch.log.With().Str("manifest", manifestURL).Logger()
	time.AfterFunc(delay, func() {
		wch.poll(manifestURL, log)
	})
}

func (wch *Watcher) pollLoop(manifestURL string) {
	defer wch.wg.Done()
	log := wch.log.With().Str("manifest", manifestURL).Logger()

	wch.poll(manifestURL, log)

	ticker := time.NewTicker(wch.interval)
	defer ticker.Stop()
	for {
		select {
		case <-wch.stop:
			return
		case <-ticker.C:
			wch.poll(manifestURL, log)
		}
	}
}

func (wch *Watcher) poll(manifestURL string, log zerolog.Logger) {
	result, err := wch.inst.Install(manifestURL)
	if err != nil {
		log.Error().Err(err).Msg("manifest poll failed")
		return
	}
	if result.Changed {
		log.Info().Str("hash", result.Version.Hash).Msg("installed new manifest version")
	}
}

// runGCLoop is the Gateway's GC Sweeper trigger loop (spec.md §4.7): wakes
// on either its own ticker or a signal from triggerGC, whichever comes
// first, and runs one Sweep pass — grounded on the teacher's own
// ticker-plus-channel background update pattern.
func (g *Gateway) runGCLoop(interval time.Duration) {
	sweeper := &gc.Sweeper{
		DB:          g.db,
		Liveness:    2 * interval,
		HistoryKeep: 1,
		Log:         g.log,
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-g.gcTrig:
		case <-ticker.C:
		}
		stats, err := sweeper.Sweep(time.Now())
		if err != nil {
			g.log.Error().Err(err).Msg("gc sweep failed")
			continue
		}
		if stats.BucketsDeleted > 0 || stats.SessionsExpired > 0 || stats.ClientsExpired > 0 {
			g.log.Debug().
				Int("bucketsDeleted", stats.BucketsDeleted).
				Int("versionsPruned", stats.VersionsPruned).
				Int("sessionsExpired", stats.SessionsExpired).
				Int("clientsExpired", stats.ClientsExpired).
				Msg("gc sweep complete")
		}
	}
}

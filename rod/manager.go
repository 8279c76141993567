package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/scraper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages rendered before the
// browser process is replaced.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process and replaces it after a
// fixed number of rendered pages. Long-lived Chrome processes grow in
// memory even when every page is closed.
//
// A replaced browser stays open until its last page is released, so
// recycling never interrupts a render in progress.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu        sync.Mutex
	current   *generation
	retired   map[*generation]struct{}
	userAgent string
	maxPages  int64
	pageCount int64
	closed    bool
}

// generation is one browser process and the pages open on it.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	active   int
}

func (g *generation) close() error {
	err := g.browser.Close()
	g.launcher.Kill()
	return err
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages after which the browser is recycled.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithLaunchUserAgent passes a default User-Agent to every launched browser.
func WithLaunchUserAgent(ua string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userAgent = ua
	}
}

// NewBrowserManager launches a headless browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		retired:  make(map[*generation]struct{}),
	}
	for _, opt := range opts {
		opt(bm)
	}
	if bm.maxPages <= 0 {
		bm.maxPages = DefaultMaxPages
	}

	g, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = g
	return bm, nil
}

// Acquire returns a browser for rendering one page, first replacing the
// current browser if it has served maxPages pages. The caller must call
// release once the page is closed.
func (bm *BrowserManager) Acquire() (browser *rod.Browser, release func(), err error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, scraper.Errorf(scraper.EINVALID, "browser manager is closed")
	}
	if bm.pageCount >= bm.maxPages {
		bm.recycle()
	}

	g := bm.current
	g.active++
	bm.pageCount++

	var once sync.Once
	release = func() {
		once.Do(func() { bm.release(g) })
	}
	return g.browser, release, nil
}

func (bm *BrowserManager) release(g *generation) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	g.active--
	if _, ok := bm.retired[g]; ok && g.active == 0 {
		delete(bm.retired, g)
		_ = g.close()
	}
}

// Close shuts down every browser, including replaced ones with pages still
// open. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	for g := range bm.retired {
		_ = g.close()
		delete(bm.retired, g)
	}
	err := bm.current.close()
	bm.current = nil
	return err
}

// LauncherPID returns the process ID of the current browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// Retired returns the number of replaced browsers still serving pages.
func (bm *BrowserManager) Retired() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return len(bm.retired)
}

func (bm *BrowserManager) launch() (*generation, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if bm.userAgent != "" {
		lnchr = lnchr.Set("user-agent", bm.userAgent)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &generation{browser: browser, launcher: lnchr}, nil
}

// recycle swaps in a fresh browser. The old one closes now if idle, or when
// its last page is released. A failed launch keeps the old one.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	g, err := bm.launch()
	if err != nil {
		return
	}

	old := bm.current
	if old.active == 0 {
		_ = old.close()
	} else {
		bm.retired[old] = struct{}{}
	}
	bm.current = g
	bm.pageCount = 0
}

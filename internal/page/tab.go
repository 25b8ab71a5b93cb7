// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/pdiddy/paperclip/pkg/types"
)

const defaultNavigateTimeout = 30 * time.Second

// Tab is an Accessor over a live, rendered browser page driven through the
// Chrome DevTools protocol.
type Tab struct {
	page     *rod.Page
	browser  *rod.Browser
	launcher *launcher.Launcher
	url      string
}

// Compile-time check that Tab implements Accessor.
var _ Accessor = (*Tab)(nil)

// OpenTab connects to the browser described by cfg, opens pageURL in a new
// tab, and waits for it to load. When cfg.RemoteURL is empty a local browser
// is launched, using an installed Chrome when one is found, and torn down
// again by Close.
func OpenTab(ctx context.Context, cfg types.BrowserConfig, pageURL string) (*Tab, error) {
	t := &Tab{url: pageURL}

	controlURL := cfg.RemoteURL
	if controlURL == "" {
		t.launcher = launcher.New().Headless(cfg.Headless)
		// Prefer an installed Chrome over downloading one.
		if bin, ok := launcher.LookPath(); ok {
			t.launcher = t.launcher.Bin(bin)
		}
		u, err := t.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		controlURL = u
	} else if !strings.HasPrefix(controlURL, "ws") {
		u, err := launcher.ResolveURL(controlURL)
		if err != nil {
			return nil, fmt.Errorf("browser: resolve %s: %w", controlURL, err)
		}
		controlURL = u
	}

	t.browser = rod.New().ControlURL(controlURL).Context(ctx)
	if err := t.browser.Connect(); err != nil {
		t.shutdown()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	var err error
	if cfg.Stealth {
		t.page, err = stealth.Page(t.browser)
	} else {
		t.page, err = t.browser.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		t.shutdown()
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	timeout := cfg.NavigateTimeout
	if timeout <= 0 {
		timeout = defaultNavigateTimeout
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := t.page.Context(navCtx).Navigate(pageURL); err != nil {
		t.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	// A load timeout still leaves a usable, partially rendered page.
	_ = t.page.Context(navCtx).WaitLoad()

	return t, nil
}

// URL returns the page location the tab was opened on.
func (t *Tab) URL() string { return t.url }

// Descriptors reads every <meta> element with a name or property attribute.
func (t *Tab) Descriptors(ctx context.Context) ([]Descriptor, error) {
	els, err := t.page.Context(ctx).Elements("meta[content]")
	if err != nil {
		return nil, fmt.Errorf("browser: query meta: %w", err)
	}

	var descs []Descriptor
	for _, el := range els {
		content, err := el.Attribute("content")
		if err != nil || content == nil {
			continue
		}
		if name, err := el.Attribute("name"); err == nil && name != nil && *name != "" {
			descs = append(descs, Descriptor{Attr: "name", Key: *name, Content: *content})
			continue
		}
		if prop, err := el.Attribute("property"); err == nil && prop != nil && *prop != "" {
			descs = append(descs, Descriptor{Attr: "property", Key: *prop, Content: *content})
		}
	}
	return descs, nil
}

// Text returns the innerText of the first element matching selector.
func (t *Tab) Text(ctx context.Context, selector string) (string, bool, error) {
	els, err := t.page.Context(ctx).Elements(selector)
	if err != nil {
		return "", false, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	if els.Empty() {
		return "", false, nil
	}
	text, err := els.First().Text()
	if err != nil {
		return "", false, fmt.Errorf("browser: text of %q: %w", selector, err)
	}
	return text, true, nil
}

// Close closes the tab, and the browser too when OpenTab launched it.
func (t *Tab) Close() error {
	var err error
	if t.page != nil {
		err = t.page.Close()
	}
	t.shutdown()
	return err
}

func (t *Tab) shutdown() {
	if t.launcher == nil {
		return
	}
	if t.browser != nil {
		_ = t.browser.Close()
	}
	t.launcher.Kill()
	t.launcher.Cleanup()
}

package services

import (
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// BrowserSession owns one Chromium instance and hands out job pages with
// the Easy Apply modal already opened.
type BrowserSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

// BrowserOptions configure the launched Chromium instance.
type BrowserOptions struct {
	Headless bool
	// UserDataDir persists the LinkedIn login session between runs.
	UserDataDir string
}

func NewBrowserSession(opts BrowserOptions) (*BrowserSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	args := []string{
		"--no-sandbox",
		"--disable-blink-features=AutomationControlled",
		"--disable-extensions",
		"--disable-plugins-discovery",
	}

	session := &BrowserSession{pw: pw}
	if opts.UserDataDir != "" {
		ctx, err := pw.Chromium.LaunchPersistentContext(opts.UserDataDir, playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless: playwright.Bool(opts.Headless),
			Args:     args,
		})
		if err != nil {
			pw.Stop()
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		session.context = ctx
		return session, nil
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     args,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	session.browser = browser
	return session, nil
}

func (s *BrowserSession) Close() error {
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			log.Printf("Failed to close browser context: %v", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
	}
	return s.pw.Stop()
}

func (s *BrowserSession) newPage() (playwright.Page, error) {
	if s.context != nil {
		return s.context.NewPage()
	}
	return s.browser.NewPage()
}

// OpenJob navigates to the job posting, verifies the login state and
// opens the Easy Apply modal. The returned playwright page is owned by
// the caller.
func (s *BrowserSession) OpenJob(jobURL string) (playwright.Page, error) {
	page, err := s.newPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser page: %w", err)
	}

	page.SetExtraHTTPHeaders(map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	})

	log.Printf("Navigating to job page %s", jobURL)
	if _, err := page.Goto(jobURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("failed to load job page: %w", err)
	}

	if signIn, err := page.Locator("a[href*='login']").First().IsVisible(); err == nil && signIn {
		page.Close()
		return nil, fmt.Errorf("not logged in to LinkedIn")
	}

	if err := s.openEasyApply(page); err != nil {
		page.Close()
		return nil, err
	}
	return page, nil
}

// openEasyApply clicks the Easy Apply button and waits for the modal.
func (s *BrowserSession) openEasyApply(page playwright.Page) error {
	selectors := []string{
		"button.jobs-apply-button",
		"button[aria-label*='Easy Apply']",
		"div.jobs-apply-button--top-card button",
	}
	for _, selector := range selectors {
		loc := page.Locator(selector).First()
		visible, err := loc.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := loc.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
			log.Printf("Easy Apply click via %s failed: %v", selector, err)
			continue
		}
		if err := page.Locator(".jobs-easy-apply-modal, .artdeco-modal").First().WaitFor(playwright.LocatorWaitForOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			return fmt.Errorf("apply modal did not open: %w", err)
		}
		// Modal content renders a beat after the container.
		page.WaitForTimeout(float64(time.Second.Milliseconds()))
		return nil
	}
	return fmt.Errorf("no Easy Apply button on %s", page.URL())
}

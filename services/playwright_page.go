package services

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightPage adapts a playwright.Page to the Page surface. It is the
// only file in the core that imports the automation engine.
type PlaywrightPage struct {
	page playwright.Page
}

func NewPlaywrightPage(page playwright.Page) *PlaywrightPage {
	return &PlaywrightPage{page: page}
}

func (p *PlaywrightPage) URL() string {
	return p.page.URL()
}

func (p *PlaywrightPage) Content() (string, error) {
	return p.page.Content()
}

func (p *PlaywrightPage) QueryAll(selector string) ([]Element, error) {
	locators, err := p.page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	elements := make([]Element, 0, len(locators))
	for _, loc := range locators {
		elements = append(elements, &playwrightElement{loc: loc})
	}
	return elements, nil
}

func (p *PlaywrightPage) Press(key string) error {
	return p.page.Keyboard().Press(key)
}

func (p *PlaywrightPage) GoBack() error {
	_, err := p.page.GoBack()
	return err
}

func (p *PlaywrightPage) Screenshot() ([]byte, error) {
	return p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Text() (string, error) {
	text, err := e.loc.TextContent()
	if err != nil {
		return "", err
	}
	return text, nil
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	value, err := e.loc.GetAttribute(name)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (e *playwrightElement) InputValue() (string, error) {
	return e.loc.InputValue()
}

func (e *playwrightElement) IsVisible() (bool, error) {
	return e.loc.IsVisible()
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	return e.loc.IsEnabled()
}

func (e *playwrightElement) IsChecked() (bool, error) {
	return e.loc.IsChecked()
}

func (e *playwrightElement) Click() error {
	return e.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	})
}

func (e *playwrightElement) DispatchClick() error {
	return e.loc.DispatchEvent("click", nil)
}

func (e *playwrightElement) ScrollIntoView() error {
	return e.loc.ScrollIntoViewIfNeeded()
}

func (e *playwrightElement) Fill(value string) error {
	return e.loc.Fill(value)
}

func (e *playwrightElement) Press(key string) error {
	return e.loc.Press(key)
}

func (e *playwrightElement) SelectByLabel(label string) error {
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	return err
}

func (e *playwrightElement) SetFiles(paths ...string) error {
	return e.loc.SetInputFiles(paths)
}

func (e *playwrightElement) QueryAll(selector string) ([]Element, error) {
	locators, err := e.loc.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	elements := make([]Element, 0, len(locators))
	for _, loc := range locators {
		elements = append(elements, &playwrightElement{loc: loc})
	}
	return elements, nil
}

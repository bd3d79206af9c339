package services

// Element is one interactable control on the current page. All core
// components operate through this surface and never assume a specific
// automation engine underneath.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, error)
	InputValue() (string, error)
	IsVisible() (bool, error)
	IsEnabled() (bool, error)
	IsChecked() (bool, error)
	Click() error
	// DispatchClick fires a synthetic click event, used when a direct
	// click is intercepted by an overlay.
	DispatchClick() error
	ScrollIntoView() error
	Fill(value string) error
	Press(key string) error
	SelectByLabel(label string) error
	SetFiles(paths ...string) error
	// QueryAll runs a selector scoped to this element.
	QueryAll(selector string) ([]Element, error)
}

// Page is the abstract DOM access surface the driver, scanner, filler,
// resolver and detector share. One Page is exclusively owned by the
// orchestrator for the duration of one job.
type Page interface {
	URL() string
	Content() (string, error)
	QueryAll(selector string) ([]Element, error)
	// Press sends a key to the page (keyboard focus target).
	Press(key string) error
	GoBack() error
	Screenshot() ([]byte, error)
}

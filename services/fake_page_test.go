package services

import "fmt"

// fakeElement is a scriptable Element for driver-level tests. Zero value
// is an invisible, disabled element; use newFakeElement for a usable one.
type fakeElement struct {
	text    string
	attrs   map[string]string
	value   string
	visible bool
	enabled bool
	checked bool

	clicks     int
	clickErr   error
	onClick    func()
	filledWith []string
	pressed    []string
	selections []string
	files      []string

	children map[string][]Element
}

func newFakeElement(text string) *fakeElement {
	return &fakeElement{
		text:     text,
		attrs:    map[string]string{},
		visible:  true,
		enabled:  true,
		children: map[string][]Element{},
	}
}

func (e *fakeElement) withAttr(name, value string) *fakeElement {
	e.attrs[name] = value
	return e
}

func (e *fakeElement) withChildren(selector string, children ...*fakeElement) *fakeElement {
	for _, c := range children {
		e.children[selector] = append(e.children[selector], c)
	}
	return e
}

func (e *fakeElement) Text() (string, error) { return e.text, nil }

func (e *fakeElement) Attribute(name string) (string, error) { return e.attrs[name], nil }

func (e *fakeElement) InputValue() (string, error) { return e.value, nil }

func (e *fakeElement) IsVisible() (bool, error) { return e.visible, nil }

func (e *fakeElement) IsEnabled() (bool, error) { return e.enabled, nil }

func (e *fakeElement) IsChecked() (bool, error) { return e.checked, nil }

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) DispatchClick() error { return e.Click() }

func (e *fakeElement) ScrollIntoView() error { return nil }

func (e *fakeElement) Fill(value string) error {
	e.filledWith = append(e.filledWith, value)
	e.value = value
	return nil
}

func (e *fakeElement) Press(key string) error {
	e.pressed = append(e.pressed, key)
	return nil
}

func (e *fakeElement) SelectByLabel(label string) error {
	e.selections = append(e.selections, label)
	return nil
}

func (e *fakeElement) SetFiles(paths ...string) error {
	e.files = append(e.files, paths...)
	return nil
}

func (e *fakeElement) QueryAll(selector string) ([]Element, error) {
	return e.children[selector], nil
}

// fakePage is a scriptable Page. Tests mutate content/elements from
// element onClick hooks to simulate step transitions.
type fakePage struct {
	url      string
	content  string
	elements map[string][]Element
	pressed  []string
	shots    int
	backs    int
}

func newFakePage(url, content string) *fakePage {
	return &fakePage{url: url, content: content, elements: map[string][]Element{}}
}

func (p *fakePage) set(selector string, elements ...*fakeElement) {
	p.elements[selector] = nil
	for _, e := range elements {
		p.elements[selector] = append(p.elements[selector], e)
	}
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Content() (string, error) { return p.content, nil }

func (p *fakePage) QueryAll(selector string) ([]Element, error) {
	return p.elements[selector], nil
}

func (p *fakePage) Press(key string) error {
	p.pressed = append(p.pressed, key)
	return nil
}

func (p *fakePage) GoBack() error { p.backs++; return nil }

func (p *fakePage) Screenshot() ([]byte, error) {
	p.shots++
	return []byte(fmt.Sprintf("shot-%d", p.shots)), nil
}
